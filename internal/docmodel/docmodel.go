package docmodel

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
)

// Document represents one parsed content page.
//
// Documents are immutable after scanning except for RenderedHTML, which is
// populated once during the conversion pass. A nil RenderedHTML means
// "unprocessed" and is modeled explicitly rather than inferred from errors.
type Document struct {
	ID           string // stable unique identifier, generated at parse time
	RelativePath string // slash-separated, relative to the content root, keeps source extension
	Title        string
	Description  string
	Keywords     []string
	Date         time.Time
	Weight       *int // nil sorts last among siblings
	Draft        bool
	Aliases      []string
	Tags         []string
	Categories   []string
	Custom       map[string]string
	RawBody      string  // Markdown after front matter removal and shortcode expansion
	RenderedHTML *string // nil until the conversion step runs
}

// NewDocument creates a Document with a fresh identity and a normalized
// relative path.
func NewDocument(relativePath string) (*Document, error) {
	normalized, err := NormalizeRelativePath(relativePath)
	if err != nil {
		return nil, err
	}
	return &Document{ID: uuid.NewString(), RelativePath: normalized}, nil
}

// Dir returns the document's containing directory ("" for root-level documents).
func (d *Document) Dir() string {
	dir := path.Dir(d.RelativePath)
	if dir == "." {
		return ""
	}
	return dir
}

// Depth returns the document's nesting depth: the number of path separators in
// its relative path. A root-level document has depth zero.
func (d *Document) Depth() int {
	return strings.Count(d.RelativePath, "/")
}

// HasWeight reports whether an explicit ordering weight was set.
func (d *Document) HasWeight() bool { return d.Weight != nil }

// SetRenderedHTML records the conversion output. It is a build error to render
// the same document twice; the tree is rebuilt wholesale, documents are not.
func (d *Document) SetRenderedHTML(html string) {
	d.RenderedHTML = &html
}

// IsRendered reports whether the Markdown conversion step has run.
func (d *Document) IsRendered() bool { return d.RenderedHTML != nil }

// DirectoryMetadata holds optional per-directory front matter sourced from the
// reserved section index file. The file itself is never compiled into a
// Document.
type DirectoryMetadata struct {
	Title       string
	Description string
	Weight      *int
}

// NormalizeRelativePath cleans a slash-separated path and enforces the model
// invariants: no leading slash and no remaining ".." segments.
func NormalizeRelativePath(p string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "./")
	if cleaned == "." || cleaned == "" {
		return "", errors.ValidationError("empty relative path").Build()
	}
	if strings.HasPrefix(cleaned, "/") {
		return "", errors.ValidationError("relative path must not be absolute").
			WithContext("path", p).Build()
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.ValidationError("relative path escapes the content root").
			WithContext("path", p).Build()
	}
	return cleaned, nil
}
