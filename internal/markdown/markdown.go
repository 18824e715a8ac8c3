package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
)

// converter is the shared goldmark instance. Goldmark converters are safe for
// concurrent use, so one instance serves all scan workers.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ToHTML converts a Markdown body (front matter already removed) into an HTML
// fragment.
func ToHTML(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert(body, &buf); err != nil {
		return "", errors.WrapError(err, errors.CategoryConversion, "markdown conversion failed").Build()
	}
	return buf.String(), nil
}

// InlineHTML converts a short Markdown snippet and strips the wrapping
// paragraph tag, so bold/italic/link markup can be embedded inside an existing
// block element (shortcode text, index descriptions).
func InlineHTML(snippet string) (string, error) {
	rendered, err := ToHTML([]byte(snippet))
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(rendered)
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return out, nil
}
