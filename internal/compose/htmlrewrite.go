package compose

import (
	"log/slog"
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/helpbundler/internal/logfields"
	"git.home.luguber.info/inful/helpbundler/internal/relpath"
)

// processContent runs the DOM-level pass over a document's rendered HTML:
// heading anchors, href rewriting, and image source rewriting. Any failure
// degrades to returning the fragment unmodified for this page, with a warning,
// rather than failing the build.
func (c *Composer) processContent(content, docPath string) string {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	roots, err := html.ParseFragment(strings.NewReader(content), ctx)
	if err != nil {
		slog.Warn("HTML fragment manipulation failed, passing content through",
			logfields.File(docPath), logfields.Error(err))
		return content
	}

	anchors := map[string]int{}
	var b strings.Builder
	for _, root := range roots {
		c.rewriteNode(root, docPath, anchors)

		// Top-level headings have no parent to hang a preceding sibling on;
		// emit their anchor directly into the output stream.
		if name, ok := headingAnchorName(root, anchors); ok {
			if err := html.Render(&b, anchorNode(name)); err != nil {
				slog.Warn("HTML rendering failed, passing content through",
					logfields.File(docPath), logfields.Error(err))
				return content
			}
		}
		if err := html.Render(&b, root); err != nil {
			slog.Warn("HTML rendering failed, passing content through",
				logfields.File(docPath), logfields.Error(err))
			return content
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// rewriteNode walks below a root node, rewriting link and image attributes and
// inserting anchors before nested headings.
func (c *Composer) rewriteNode(node *html.Node, docPath string, anchors map[string]int) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if name, ok := headingAnchorName(child, anchors); ok {
			node.InsertBefore(anchorNode(name), child)
		}
		c.rewriteNode(child, docPath, anchors)
	}

	if node.Type != html.ElementNode {
		return
	}
	switch node.DataAtom {
	case atom.A:
		rewriteAttr(node, "href", func(v string) string { return c.rewriteHref(v, docPath) })
	case atom.Img:
		rewriteAttr(node, "src", func(v string) string { return relpath.ResolveAssetPath(v, docPath) })
	}
}

// rewriteHref applies the link policy for an authored href: base-URL rewriting
// first, external and in-page links untouched, Markdown targets resolved to
// their output pages, file references redirected to the flat asset store.
func (c *Composer) rewriteHref(href, docPath string) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return href
	}
	if c.meta.BaseURL != "" && strings.HasPrefix(href, c.meta.BaseURL) {
		return relpath.RewriteAbsoluteLink(href, docPath, c.meta.BaseURL)
	}
	if relpath.IsExternal(href) {
		return href
	}

	target, fragment := href, ""
	if idx := strings.IndexByte(href, '#'); idx >= 0 {
		target, fragment = href[:idx], href[idx:]
	}

	if strings.HasSuffix(target, ".md") {
		if !strings.HasPrefix(target, "/") {
			target = path.Join(parentOf(docPath), target)
		}
		normalized := relpath.Normalize(target)
		return relpath.DocumentLink(docPath, normalized) + fragment
	}

	if path.Ext(target) != "" {
		return relpath.ResolveAssetPath(target, docPath) + fragment
	}
	return href
}

func rewriteAttr(node *html.Node, key string, fn func(string) string) {
	for i := range node.Attr {
		if node.Attr[i].Key == key {
			node.Attr[i].Val = fn(node.Attr[i].Val)
			return
		}
	}
}

var headingAtoms = map[atom.Atom]struct{}{
	atom.H1: {}, atom.H2: {}, atom.H3: {}, atom.H4: {}, atom.H5: {}, atom.H6: {},
}

// headingAnchorName derives the anchor name for a heading node and registers
// it in the per-page collision map. Repeated names get a numeric suffix; the
// first occurrence keeps the bare name so existing deep links stay stable.
func headingAnchorName(node *html.Node, anchors map[string]int) (string, bool) {
	if node.Type != html.ElementNode {
		return "", false
	}
	if _, ok := headingAtoms[node.DataAtom]; !ok {
		return "", false
	}

	name := sanitizeAnchor(textOf(node))
	if name == "" {
		return "", false
	}
	anchors[name]++
	if n := anchors[name]; n > 1 {
		slog.Debug("Disambiguating duplicate heading anchor", slog.String("anchor", name), slog.Int("occurrence", n))
		name = name + "_" + strconv.Itoa(n)
	}
	return name, true
}

// sanitizeAnchor removes every non-alphanumeric character and replaces spaces
// with underscores.
func sanitizeAnchor(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func textOf(node *html.Node) string {
	if node.Type == html.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(textOf(child))
	}
	return b.String()
}

func anchorNode(name string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr:     []html.Attribute{{Key: "name", Val: name}},
	}
}
