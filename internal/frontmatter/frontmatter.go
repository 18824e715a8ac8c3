package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Dialect identifies the front matter block format found at the top of a document.
type Dialect int

const (
	DialectNone Dialect = iota
	DialectYAML
	DialectTOML
)

// Style captures formatting details needed for stable rewriting.
//
// It intentionally focuses on newline shape and does not attempt to preserve
// original YAML formatting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// ErrMissingClosingDelimiter indicates the document started with a front matter
// delimiter but did not contain a closing delimiter on its own line.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Split separates a front matter block from the Markdown body.
//
// A leading `---` line marks a YAML block, a leading `+++` line marks a TOML
// block. If the document starts with neither, dialect is DialectNone and body
// is the full input.
func Split(content []byte) (block []byte, body []byte, dialect Dialect, style Style, err error) {
	style = detectStyle(content)

	for _, candidate := range []struct {
		marker  string
		dialect Dialect
	}{
		{"---", DialectYAML},
		{"+++", DialectTOML},
	} {
		block, body, err = splitAt(content, candidate.marker, style.Newline)
		if err != nil {
			return nil, nil, candidate.dialect, style, err
		}
		if block != nil {
			return block, body, candidate.dialect, style, nil
		}
	}
	return nil, content, DialectNone, style, nil
}

// splitAt splits content around marker-delimited front matter. A nil block with
// nil error means the marker did not open the document.
func splitAt(content []byte, marker, nl string) (block []byte, body []byte, err error) {
	open := []byte(marker + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, nil, nil
	}

	blockStart := len(open)
	closeLine := []byte(marker + nl)
	if bytes.HasPrefix(content[blockStart:], closeLine) {
		return []byte{}, content[blockStart+len(closeLine):], nil
	}

	closeSeq := []byte(nl + marker + nl)
	idx := bytes.Index(content[blockStart:], closeSeq)
	if idx < 0 {
		// A closing delimiter as the very last line without trailing newline.
		tail := []byte(nl + marker)
		if bytes.HasSuffix(content[blockStart:], tail) {
			end := len(content) - len(tail)
			return content[blockStart : end+len(nl)], []byte{}, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}

	blockEnd := blockStart + idx + len(nl)
	bodyStart := blockStart + idx + len(closeSeq)
	return content[blockStart:blockEnd], content[bodyStart:], nil
}

// ParseYAML parses raw YAML front matter (without --- delimiters) into a map.
func ParseYAML(block []byte) (map[string]any, error) {
	if len(block) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(block, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	hasTrailingNewline := len(content) > 0 && (content[len(content)-1] == '\n')

	return Style{
		Newline:            newline,
		HasTrailingNewline: hasTrailingNewline,
	}
}
