// Package compose assembles the final HTML pages of a bundle: content pages,
// section index pages, the table-of-contents page, and the landing page, with
// breadcrumbs and a sidebar tree on every page.
//
// Every function here is a pure transformation of (document-or-section, tree,
// project metadata); nothing in this package touches the filesystem.
package compose

import (
	"html/template"
	"strings"

	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
	"git.home.luguber.info/inful/helpbundler/internal/doctree"
	"git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/relpath"
)

// StylesheetName is the file name of the theme stylesheet at the bundle root.
const StylesheetName = "style.css"

// TOCPageName is the output path of the full table-of-contents page.
const TOCPageName = "toc.html"

// Meta is the project metadata the composer needs for page shells and link
// rewriting.
type Meta struct {
	BundleTitle string
	BaseURL     string
}

// Page is one finished output page.
type Page struct {
	OutputRelativePath string
	HTML               string
}

// Composer generates pages from an already-built tree and document set.
type Composer struct {
	tree *doctree.DirectoryNode
	docs *docmodel.DocumentSet
	meta Meta
}

// New creates a Composer over the compiled tree.
func New(tree *doctree.DirectoryNode, docs *docmodel.DocumentSet, meta Meta) *Composer {
	return &Composer{tree: tree, docs: docs, meta: meta}
}

// ComposeAll produces the full page set: one page per document, one index per
// section, the table-of-contents page, and the landing page.
func (c *Composer) ComposeAll() ([]Page, error) {
	var pages []Page

	for _, doc := range c.docs.Sorted() {
		page, err := c.ContentPage(doc)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	pages = append(pages, c.IndexPages()...)
	if err := UniqueOutputs(pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// UniqueOutputs verifies that no two pages share an output path. An authored
// document named index.md lands on the same path as its section's generated
// index page, and root-level index.md or toc.md collide with the landing and
// table-of-contents pages.
func UniqueOutputs(pages []Page) error {
	seen := make(map[string]struct{}, len(pages))
	for _, page := range pages {
		if _, dup := seen[page.OutputRelativePath]; dup {
			return errors.NewError(errors.CategoryCompile, "output path collision between authored and generated pages").
				WithContext("path", page.OutputRelativePath).Fatal().Build()
		}
		seen[page.OutputRelativePath] = struct{}{}
	}
	return nil
}

// IndexPages renders every generated page: one index per section, the
// table-of-contents page, and the landing page.
func (c *Composer) IndexPages() []Page {
	var pages []Page
	for _, section := range doctree.Sections(c.tree) {
		pages = append(pages, c.SectionIndexPage(section))
	}
	return append(pages, c.TOCPage(), c.LandingPage())
}

// ContentPage renders one document's page, including breadcrumbs, sidebar,
// heading anchors, and rewritten links.
func (c *Composer) ContentPage(doc *docmodel.Document) (Page, error) {
	if !doc.IsRendered() {
		return Page{}, errors.NewError(errors.CategoryCompile, "document not rendered").
			WithContext("path", doc.RelativePath).Build()
	}

	body := c.processContent(*doc.RenderedHTML, doc.RelativePath)
	html := c.shell(shellData{
		Title:       doc.Title,
		Description: doc.Description,
		Keywords:    strings.Join(doc.Keywords, ", "),
		CSSPath:     relpath.RelativeLink(doc.RelativePath, StylesheetName),
		Breadcrumbs: c.Breadcrumbs(doc.RelativePath, doc.Title),
		Sidebar:     c.Sidebar(doc.RelativePath),
		Body:        template.HTML(body),
	})
	return Page{OutputRelativePath: relpath.OutputPath(doc.RelativePath), HTML: html}, nil
}

// pagePath returns a pseudo document path for a generated page inside dirPath,
// so the shared link resolver sees the right source directory.
func pagePath(dirPath, name string) string {
	if dirPath == "" {
		return name
	}
	return dirPath + "/" + name
}
