package hugodialect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/helpbundler/internal/provider"
)

func newTestProvider() *Provider {
	return New(provider.ScanOptions{Workers: 2})
}

func TestProcessShortcodes_AlertExpandsToStyledBlock(t *testing.T) {
	p := newTestProvider()
	out := p.ProcessShortcodes(`{{< alert context="warning" text="mind the gap" />}}`)

	require.Contains(t, out, `class="alert alert-warning"`)
	require.Contains(t, out, `role="alert"`)
	require.Contains(t, out, "mind the gap")
	require.Contains(t, out, "⚠️")
}

func TestProcessShortcodes_CustomIconOverridesDefault(t *testing.T) {
	p := newTestProvider()
	out := p.ProcessShortcodes(`{{< alert icon="👉" context="info" text="note" />}}`)
	require.Contains(t, out, "👉")
	require.NotContains(t, out, "ℹ️")
}

func TestProcessShortcodes_UnknownContextFallsBackToInfo(t *testing.T) {
	p := newTestProvider()
	out := p.ProcessShortcodes(`{{< alert context="exotic" text="hi" />}}`)
	require.Contains(t, out, `class="alert alert-info"`)
}

func TestProcessShortcodes_ErrorMapsToDangerClass(t *testing.T) {
	p := newTestProvider()
	out := p.ProcessShortcodes(`{{< alert context="error" text="boom" />}}`)
	require.Contains(t, out, `class="alert alert-danger"`)
}

func TestProcessShortcodes_TextRunsThroughInlineMarkdown(t *testing.T) {
	p := newTestProvider()
	out := p.ProcessShortcodes(`{{< alert context="info" text="use **bold** moves" />}}`)
	require.Contains(t, out, "<strong>bold</strong>")
	require.NotContains(t, out, "<p>")
}

func TestProcessShortcodes_SingleQuotedAttributes(t *testing.T) {
	p := newTestProvider()
	out := p.ProcessShortcodes(`{{< alert context='success' text='done' />}}`)
	require.Contains(t, out, `class="alert alert-success"`)
	require.Contains(t, out, "done")
}

func TestProcessShortcodes_MalformedMacroLeftVerbatim(t *testing.T) {
	p := newTestProvider()
	input := "before {{< alert context= >} after"
	require.Equal(t, input, p.ProcessShortcodes(input))
}

func TestProcessShortcodes_Idempotent(t *testing.T) {
	p := newTestProvider()
	input := `intro {{< alert context="info" text="once" />}} outro`
	once := p.ProcessShortcodes(input)
	twice := p.ProcessShortcodes(once)
	require.Equal(t, once, twice)
}

func TestProcessShortcodes_PlainTextUnchanged(t *testing.T) {
	p := newTestProvider()
	input := "# Heading\n\nNo macros here.\n"
	require.Equal(t, input, p.ProcessShortcodes(input))
}
