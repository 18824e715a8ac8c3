package compose

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"git.home.luguber.info/inful/helpbundler/internal/doctree"
	"git.home.luguber.info/inful/helpbundler/internal/relpath"
)

// Breadcrumbs walks the tree from the root to the current page, emitting one
// linked entry per ancestor section and the current title as the unlinked
// final crumb. The synthetic root is skipped; its place is taken by a link to
// the landing page.
func (c *Composer) Breadcrumbs(currentPath, currentTitle string) template.HTML {
	var b strings.Builder

	fmt.Fprintf(&b, `<a href="%s">%s</a>`,
		relpath.SectionIndexLink(currentPath, ""),
		html.EscapeString(c.meta.BundleTitle))

	ancestors, _ := doctree.FindDocument(c.tree, currentPath)
	if ancestors == nil {
		// Generated index pages are not document nodes. Their final crumb is
		// the section itself, so the linked chain stops at the grandparent.
		ancestors = c.ancestorsForDir(parentOf(parentOf(currentPath)))
	}
	for _, dir := range ancestors {
		if dir.RelativePath == "" {
			continue
		}
		b.WriteString(` / `)
		fmt.Fprintf(&b, `<a href="%s">%s</a>`,
			relpath.SectionIndexLink(currentPath, dir.RelativePath),
			html.EscapeString(sectionTitle(dir)))
	}

	b.WriteString(` / `)
	fmt.Fprintf(&b, `<span class="crumb-current">%s</span>`, html.EscapeString(currentTitle))
	return template.HTML(b.String())
}

// Sidebar renders the full tree as nested disclosure sections. Every link is
// resolved relative to the currently rendered page, since the sidebar markup
// is duplicated verbatim into every page; the current page's link is marked.
func (c *Composer) Sidebar(currentPath string) template.HTML {
	var b strings.Builder
	c.sidebarChildren(&b, c.tree, currentPath)
	return template.HTML(b.String())
}

func (c *Composer) sidebarChildren(b *strings.Builder, dir *doctree.DirectoryNode, currentPath string) {
	for _, child := range dir.Children {
		switch node := child.(type) {
		case *doctree.DocumentNode:
			class := ""
			if node.RelativePath == currentPath {
				class = ` class="current"`
			}
			fmt.Fprintf(b, `<a%s href="%s">%s</a>`+"\n",
				class,
				relpath.DocumentLink(currentPath, node.RelativePath),
				html.EscapeString(c.documentTitle(node)))
		case *doctree.DirectoryNode:
			fmt.Fprintf(b, `<details open><summary><a href="%s">%s</a></summary>`+"\n",
				relpath.SectionIndexLink(currentPath, node.RelativePath),
				html.EscapeString(sectionTitle(node)))
			c.sidebarChildren(b, node, currentPath)
			b.WriteString("</details>\n")
		}
	}
}

// ancestorsForDir resolves the DirectoryNode chain for a directory path,
// root first. Unknown segments end the chain early.
func (c *Composer) ancestorsForDir(dirPath string) []*doctree.DirectoryNode {
	chain := []*doctree.DirectoryNode{c.tree}
	if dirPath == "" {
		return chain
	}
	current := c.tree
segments:
	for _, segment := range strings.Split(dirPath, "/") {
		for _, child := range current.Children {
			if dir, ok := child.(*doctree.DirectoryNode); ok && dir.Name == segment {
				chain = append(chain, dir)
				current = dir
				continue segments
			}
		}
		break
	}
	return chain
}

func (c *Composer) documentTitle(node *doctree.DocumentNode) string {
	if doc, ok := c.docs.ByPath(node.RelativePath); ok && doc.Title != "" {
		return doc.Title
	}
	return strings.TrimSuffix(node.Name, ".md")
}

func sectionTitle(dir *doctree.DirectoryNode) string {
	if dir.Title != "" {
		return dir.Title
	}
	return dir.Name
}

func parentOf(p string) string {
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		return p[:idx]
	}
	return ""
}
