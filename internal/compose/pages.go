package compose

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"git.home.luguber.info/inful/helpbundler/internal/doctree"
	"git.home.luguber.info/inful/helpbundler/internal/relpath"
)

// SectionIndexPage renders a section's generated index: title and description
// from the directory metadata, then a one-level table of contents of its
// immediate children.
func (c *Composer) SectionIndexPage(section *doctree.DirectoryNode) Page {
	current := pagePath(section.RelativePath, "index.html")
	title := sectionTitle(section)

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title))
	if section.Description != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(section.Description))
	}
	c.childIndex(&b, section, current, false)

	return Page{
		OutputRelativePath: current,
		HTML: c.shell(shellData{
			Title:       title,
			Description: section.Description,
			CSSPath:     relpath.RelativeLink(current, StylesheetName),
			Breadcrumbs: c.Breadcrumbs(current, title),
			Sidebar:     c.Sidebar(current),
			Body:        template.HTML(b.String()),
		}),
	}
}

// LandingPage renders the bundle's home page: the same shape as a section
// index, rooted at the tree root.
func (c *Composer) LandingPage() Page {
	const current = "index.html"
	root := c.listingRoot()

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(c.meta.BundleTitle))
	if root.Description != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(root.Description))
	}
	c.childIndex(&b, root, current, false)

	return Page{
		OutputRelativePath: current,
		HTML: c.shell(shellData{
			Title:       c.meta.BundleTitle,
			Description: root.Description,
			CSSPath:     StylesheetName,
			Breadcrumbs: c.Breadcrumbs(current, c.meta.BundleTitle),
			Sidebar:     c.Sidebar(current),
			Body:        template.HTML(b.String()),
		}),
	}
}

// TOCPage renders the full nested table of contents of the whole bundle.
func (c *Composer) TOCPage() Page {
	current := TOCPageName
	root := c.listingRoot()

	var b strings.Builder
	b.WriteString("<h1>Table of Contents</h1>\n")
	c.childIndex(&b, root, current, true)

	return Page{
		OutputRelativePath: current,
		HTML: c.shell(shellData{
			Title:       "Table of Contents",
			CSSPath:     StylesheetName,
			Breadcrumbs: c.Breadcrumbs(current, "Table of Contents"),
			Sidebar:     c.Sidebar(current),
			Body:        template.HTML(b.String()),
		}),
	}
}

// listingRoot applies the unwrap heuristic: when the tree has exactly one
// directory child containing everything, top-level listings descend into it
// instead of showing a single-entry list.
func (c *Composer) listingRoot() *doctree.DirectoryNode {
	if len(c.tree.Children) == 1 {
		if dir, ok := c.tree.Children[0].(*doctree.DirectoryNode); ok {
			return dir
		}
	}
	return c.tree
}

// childIndex writes a list of a directory's children: subdirectories link to
// their own section index, documents link to their rendered page. With
// recurse set, nested directories expand in place.
func (c *Composer) childIndex(b *strings.Builder, dir *doctree.DirectoryNode, currentPath string, recurse bool) {
	b.WriteString("<ul class=\"section-toc\">\n")
	for _, child := range dir.Children {
		switch node := child.(type) {
		case *doctree.DocumentNode:
			fmt.Fprintf(b, `<li><a href="%s">%s</a></li>`+"\n",
				relpath.DocumentLink(currentPath, node.RelativePath),
				html.EscapeString(c.documentTitle(node)))
		case *doctree.DirectoryNode:
			fmt.Fprintf(b, `<li><a href="%s">%s</a>`+"\n",
				relpath.SectionIndexLink(currentPath, node.RelativePath),
				html.EscapeString(sectionTitle(node)))
			if recurse {
				c.childIndex(b, node, currentPath, true)
			}
			b.WriteString("</li>\n")
		}
	}
	b.WriteString("</ul>\n")
}
