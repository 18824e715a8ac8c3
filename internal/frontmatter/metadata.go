package frontmatter

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
)

// Metadata holds the recognized document-level front matter fields plus an
// open-ended bag of custom string properties.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
	Date        time.Time
	Draft       bool
	Weight      *int
	Aliases     []string
	Tags        []string
	Categories  []string
	Custom      map[string]string
}

// HasWeight reports whether an explicit weight was set.
func (m Metadata) HasWeight() bool { return m.Weight != nil }

// Result is the outcome of extracting front matter from a raw document.
type Result struct {
	Metadata Metadata
	Body     []byte
	Dialect  Dialect
	Style    Style
}

// Extract splits raw document content into front matter metadata and body.
//
// TOML (`+++`) blocks are recognized but not parsed: the block is discarded,
// metadata is empty, and Dialect reports DialectTOML so callers can surface a
// warning. A missing closing delimiter yields a frontmatter-category error; the
// caller is expected to skip the document, not abort the run.
func Extract(raw []byte) (Result, error) {
	block, body, dialect, style, err := Split(raw)
	if err != nil {
		return Result{}, errors.WrapError(err, errors.CategoryFrontMatter, "malformed front matter").Build()
	}

	res := Result{Body: body, Dialect: dialect, Style: style}
	if dialect != DialectYAML {
		return res, nil
	}

	fields, err := ParseYAML(block)
	if err != nil {
		return Result{}, errors.WrapError(err, errors.CategoryFrontMatter, "invalid YAML front matter").Build()
	}
	res.Metadata = FromMapping(fields)
	return res, nil
}

// FromMapping converts a parsed front matter mapping into typed Metadata.
//
// Unrecognized keys land in Custom when their value is a string; non-string
// custom values are dropped silently.
func FromMapping(fields map[string]any) Metadata {
	meta := Metadata{Custom: map[string]string{}}
	for key, value := range fields {
		switch key {
		case "title":
			meta.Title = asString(value)
		case "description":
			meta.Description = asString(value)
		case "keywords":
			meta.Keywords = asStringList(value, true)
		case "date":
			meta.Date = asDate(value)
		case "draft":
			if b, ok := value.(bool); ok {
				meta.Draft = b
			}
		case "weight":
			if w, ok := asInt(value); ok {
				meta.Weight = &w
			}
		case "aliases":
			meta.Aliases = asStringList(value, false)
		case "tags":
			meta.Tags = asStringList(value, false)
		case "categories":
			meta.Categories = asStringList(value, false)
		default:
			if s, ok := value.(string); ok {
				meta.Custom[key] = s
			}
		}
	}
	return meta
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// asStringList normalizes sequence-of-strings values. When splitComma is set, a
// single comma-separated string is also accepted (the documented keywords form).
func asStringList(value any, splitComma bool) []string {
	switch v := value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		if splitComma && strings.Contains(v, ",") {
			parts := strings.Split(v, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if trimmed := strings.TrimSpace(p); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			return out
		}
		return []string{v}
	}
	return nil
}

func asDate(value any) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
