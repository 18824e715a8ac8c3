package hugodialect

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/helpbundler/internal/logfields"
	"git.home.luguber.info/inful/helpbundler/internal/markdown"
)

// Only well-formed macros of a fixed shape are recognized; anything else is
// left verbatim in the body rather than treated as a parse error.
var (
	alertPattern     = regexp.MustCompile(`\{\{<\s*alert\s+(.*?)\s*/?\s*>\}\}`)
	attributePattern = regexp.MustCompile(`(\w+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

type alertStyle struct {
	class string
	icon  string
}

// Context keyword to style class and default icon. Unknown contexts fall back
// to info.
var alertStyles = map[string]alertStyle{
	"info":    {class: "alert-info", icon: "ℹ️"},
	"primary": {class: "alert-primary", icon: "📌"},
	"warning": {class: "alert-warning", icon: "⚠️"},
	"danger":  {class: "alert-danger", icon: "🔥"},
	"error":   {class: "alert-danger", icon: "🔥"},
	"success": {class: "alert-success", icon: "✅"},
	"light":   {class: "alert-light", icon: "💡"},
	"dark":    {class: "alert-dark", icon: "🌑"},
}

// ProcessShortcodes expands recognized inline macros to HTML fragments.
// Expansion is idempotent: output contains no remaining macro syntax, so a
// second pass is a no-op.
func (p *Provider) ProcessShortcodes(body string) string {
	return alertPattern.ReplaceAllStringFunc(body, func(match string) string {
		attrs := parseAttributes(alertPattern.FindStringSubmatch(match)[1])
		return renderAlert(attrs)
	})
}

func parseAttributes(raw string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attributePattern.FindAllStringSubmatch(raw, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		attrs[m[1]] = value
	}
	return attrs
}

func renderAlert(attrs map[string]string) string {
	context := attrs["context"]
	style, ok := alertStyles[context]
	if !ok {
		if context != "" {
			slog.Debug("Unknown alert context, falling back to info", logfields.Provider(DialectName), slog.String("context", context))
		}
		style = alertStyles["info"]
	}

	icon := attrs["icon"]
	if icon == "" {
		icon = style.icon
	}

	// Alert text may carry inline Markdown; the wrapping paragraph tag is
	// stripped so the result nests inside the alert block.
	text, err := markdown.InlineHTML(attrs["text"])
	if err != nil {
		text = attrs["text"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="alert %s" role="alert">`, style.class)
	fmt.Fprintf(&b, `<span class="alert-icon">%s</span>`, icon)
	fmt.Fprintf(&b, `<span class="alert-text">%s</span>`, text)
	b.WriteString(`</div>`)
	return b.String()
}
