package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
	"git.home.luguber.info/inful/helpbundler/internal/doctree"
	apperrors "git.home.luguber.info/inful/helpbundler/internal/errors"
)

type fixtureDoc struct {
	relPath string
	title   string
	html    string
}

func newFixture(t *testing.T, meta Meta, docs []fixtureDoc, dirMeta map[string]docmodel.DirectoryMetadata) *Composer {
	t.Helper()
	set := docmodel.NewDocumentSet()
	for _, fd := range docs {
		doc, err := docmodel.NewDocument(fd.relPath)
		require.NoError(t, err)
		doc.Title = fd.title
		doc.SetRenderedHTML(fd.html)
		require.NoError(t, set.Add(doc))
	}
	tree := doctree.Build(set.All(), dirMeta, "bundle")
	return New(tree, set, meta)
}

func defaultFixture(t *testing.T) *Composer {
	return newFixture(t, Meta{BundleTitle: "Handbook", BaseURL: "https://example.com/docs"}, []fixtureDoc{
		{"guides/basic-usage.md", "Basic Usage", "<h1>Basic Usage</h1>\n<p>Body</p>\n"},
		{"guides/advanced-features.md", "Advanced Features", "<p>Advanced</p>\n"},
		{"getting-started/installation.md", "Installation", "<p>Install</p>\n"},
	}, map[string]docmodel.DirectoryMetadata{
		"guides": {Title: "Guides", Description: "How-to articles"},
	})
}

func TestBreadcrumbs_DocumentPage(t *testing.T) {
	c := defaultFixture(t)
	crumbs := string(c.Breadcrumbs("guides/basic-usage.md", "Basic Usage"))

	require.Contains(t, crumbs, `<a href="../index.html">Handbook</a>`)
	require.Contains(t, crumbs, `<a href="index.html">Guides</a>`)
	require.Contains(t, crumbs, `<span class="crumb-current">Basic Usage</span>`)
	// The current document is the unlinked final crumb.
	require.NotContains(t, crumbs, `>Basic Usage</a>`)
}

func TestBreadcrumbs_SectionIndexPage(t *testing.T) {
	c := defaultFixture(t)
	crumbs := string(c.Breadcrumbs("guides/index.html", "Guides"))

	require.Contains(t, crumbs, `<a href="../index.html">Handbook</a>`)
	require.Contains(t, crumbs, `<span class="crumb-current">Guides</span>`)
	// The section itself must not appear as a linked ancestor.
	require.NotContains(t, crumbs, `>Guides</a>`)
}

func TestSidebar_MarksCurrentDocument(t *testing.T) {
	c := defaultFixture(t)
	sidebar := string(c.Sidebar("guides/basic-usage.md"))

	require.Contains(t, sidebar, `class="current" href="basic-usage.html"`)
	require.Contains(t, sidebar, `href="advanced-features.html"`)
	require.Contains(t, sidebar, `href="../getting-started/installation.html"`)
}

func TestSidebar_LinksRelativeToRenderedDocument(t *testing.T) {
	c := defaultFixture(t)
	sidebar := string(c.Sidebar("getting-started/installation.md"))

	require.Contains(t, sidebar, `href="../guides/basic-usage.html"`)
	require.Contains(t, sidebar, `class="current" href="installation.html"`)
}

func TestContentPage_InsertsHeadingAnchors(t *testing.T) {
	c := defaultFixture(t)
	doc, _ := c.docs.ByPath("guides/basic-usage.md")
	page, err := c.ContentPage(doc)
	require.NoError(t, err)

	require.Equal(t, "guides/basic-usage.html", page.OutputRelativePath)
	require.Contains(t, page.HTML, `<a name="Basic_Usage"></a>`)
	require.Contains(t, page.HTML, "<h1>Basic Usage</h1>")
}

func TestContentPage_AnchorCollisionDisambiguated(t *testing.T) {
	c := newFixture(t, Meta{BundleTitle: "B"}, []fixtureDoc{
		{"page.md", "Page", "<h2>Setup</h2><h2>Setup</h2><h2>Setup!</h2>"},
	}, nil)
	doc, _ := c.docs.ByPath("page.md")
	page, err := c.ContentPage(doc)
	require.NoError(t, err)

	require.Contains(t, page.HTML, `<a name="Setup"></a>`)
	require.Contains(t, page.HTML, `<a name="Setup_2"></a>`)
	// "Setup!" sanitizes to the same anchor and becomes the third occurrence.
	require.Contains(t, page.HTML, `<a name="Setup_3"></a>`)
}

func TestContentPage_AnchorStripsNonAlphanumerics(t *testing.T) {
	c := newFixture(t, Meta{BundleTitle: "B"}, []fixtureDoc{
		{"page.md", "Page", "<h2>Q&amp;A: the basics</h2>"},
	}, nil)
	doc, _ := c.docs.ByPath("page.md")
	page, err := c.ContentPage(doc)
	require.NoError(t, err)
	require.Contains(t, page.HTML, `<a name="QA_the_basics"></a>`)
}

func TestContentPage_RewritesMarkdownLinks(t *testing.T) {
	c := newFixture(t, Meta{BundleTitle: "B"}, []fixtureDoc{
		{"guides/basic-usage.md", "Basics", `<p><a href="../getting-started/installation.md">install</a></p>`},
		{"getting-started/installation.md", "Install", "<p>x</p>"},
	}, nil)
	doc, _ := c.docs.ByPath("guides/basic-usage.md")
	page, err := c.ContentPage(doc)
	require.NoError(t, err)
	require.Contains(t, page.HTML, `href="../getting-started/installation.html"`)
}

func TestContentPage_RewritesRootAbsoluteMarkdownLinks(t *testing.T) {
	c := newFixture(t, Meta{BundleTitle: "B"}, []fixtureDoc{
		{"guides/deep/topic.md", "Topic", `<p><a href="/guides/other.md#part">other</a></p>`},
		{"guides/other.md", "Other", "<p>x</p>"},
	}, nil)
	doc, _ := c.docs.ByPath("guides/deep/topic.md")
	page, err := c.ContentPage(doc)
	require.NoError(t, err)
	require.Contains(t, page.HTML, `href="../other.html#part"`)
}

func TestContentPage_RewritesImageSources(t *testing.T) {
	c := newFixture(t, Meta{BundleTitle: "B"}, []fixtureDoc{
		{"getting-started/installation.md", "Install", `<p><img src="diagram.png" alt="d"></p>`},
	}, nil)
	doc, _ := c.docs.ByPath("getting-started/installation.md")
	page, err := c.ContentPage(doc)
	require.NoError(t, err)
	require.Contains(t, page.HTML, `src="../assets/diagram.png"`)
}

func TestContentPage_BaseURLLinksRewritten(t *testing.T) {
	c := newFixture(t, Meta{BundleTitle: "B", BaseURL: "https://example.com/docs"}, []fixtureDoc{
		{"guides/basic-usage.md", "Basics", `<p><a href="https://example.com/docs/guides/advanced-features#Tips">tips</a></p>`},
		{"guides/advanced-features.md", "Advanced", "<p>x</p>"},
	}, nil)
	doc, _ := c.docs.ByPath("guides/basic-usage.md")
	page, err := c.ContentPage(doc)
	require.NoError(t, err)
	require.Contains(t, page.HTML, `href="advanced-features.html#Tips"`)
}

func TestContentPage_ExternalLinksUntouched(t *testing.T) {
	c := newFixture(t, Meta{BundleTitle: "B"}, []fixtureDoc{
		{"page.md", "Page", `<p><a href="https://golang.org/doc">go docs</a></p>`},
	}, nil)
	doc, _ := c.docs.ByPath("page.md")
	page, err := c.ContentPage(doc)
	require.NoError(t, err)
	require.Contains(t, page.HTML, `href="https://golang.org/doc"`)
}

func TestContentPage_UnrenderedDocumentIsError(t *testing.T) {
	c := defaultFixture(t)
	raw, err := docmodel.NewDocument("loose.md")
	require.NoError(t, err)
	_, err = c.ContentPage(raw)
	require.Error(t, err)
}

func TestSectionIndexPage_ListsImmediateChildren(t *testing.T) {
	c := defaultFixture(t)
	var guides *doctree.DirectoryNode
	for _, s := range doctree.Sections(c.tree) {
		if s.RelativePath == "guides" {
			guides = s
		}
	}
	require.NotNil(t, guides)

	page := c.SectionIndexPage(guides)
	require.Equal(t, "guides/index.html", page.OutputRelativePath)
	require.Contains(t, page.HTML, "<h1>Guides</h1>")
	require.Contains(t, page.HTML, "How-to articles")
	require.Contains(t, page.HTML, `href="basic-usage.html"`)
	require.Contains(t, page.HTML, `href="advanced-features.html"`)
}

func TestLandingPage_ListsTopLevelSections(t *testing.T) {
	c := defaultFixture(t)
	page := c.LandingPage()

	require.Equal(t, "index.html", page.OutputRelativePath)
	require.Contains(t, page.HTML, "<h1>Handbook</h1>")
	require.Contains(t, page.HTML, `href="guides/index.html"`)
	require.Contains(t, page.HTML, `href="getting-started/index.html"`)
}

func TestLandingPage_UnwrapsSingleWrapperDirectory(t *testing.T) {
	c := newFixture(t, Meta{BundleTitle: "Wrapped"}, []fixtureDoc{
		{"docs/guides/a.md", "A", "<p>a</p>"},
		{"docs/intro.md", "Intro", "<p>i</p>"},
	}, nil)
	page := c.LandingPage()

	// The sole "docs" wrapper is skipped; its children are listed directly.
	require.Contains(t, page.HTML, `href="docs/intro.html"`)
	require.Contains(t, page.HTML, `href="docs/guides/index.html"`)
	require.NotContains(t, page.HTML, `<li><a href="docs/index.html">docs</a>`)
}

func TestLandingPage_NoUnwrapWithMultipleChildren(t *testing.T) {
	c := defaultFixture(t)
	page := c.LandingPage()
	require.Contains(t, page.HTML, ">Guides</a>")
}

func TestTOCPage_FullNestedListing(t *testing.T) {
	c := defaultFixture(t)
	page := c.TOCPage()

	require.Equal(t, "toc.html", page.OutputRelativePath)
	require.Contains(t, page.HTML, "Table of Contents")
	require.Contains(t, page.HTML, `href="guides/basic-usage.html"`)
	require.Contains(t, page.HTML, `href="getting-started/installation.html"`)
}

func TestComposeAll_OnePagePerDocumentPlusIndexes(t *testing.T) {
	c := defaultFixture(t)
	pages, err := c.ComposeAll()
	require.NoError(t, err)

	paths := map[string]bool{}
	for _, p := range pages {
		require.False(t, paths[p.OutputRelativePath], "duplicate output path %s", p.OutputRelativePath)
		paths[p.OutputRelativePath] = true
	}
	// 3 documents + 2 section indexes + toc + landing.
	require.Len(t, pages, 7)
	require.True(t, paths["guides/basic-usage.html"])
	require.True(t, paths["guides/index.html"])
	require.True(t, paths["getting-started/index.html"])
	require.True(t, paths["toc.html"])
	require.True(t, paths["index.html"])
}

func TestComposeAll_AuthoredIndexCollidesWithSectionIndex(t *testing.T) {
	c := newFixture(t, Meta{BundleTitle: "Handbook"}, []fixtureDoc{
		{"guides/index.md", "Guides Overview", "<p>Overview</p>\n"},
		{"guides/other.md", "Other", "<p>Other</p>\n"},
	}, nil)

	_, err := c.ComposeAll()
	require.Error(t, err)
	classified, ok := apperrors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CategoryCompile, classified.Category())
	path, _ := classified.Context().Get("path")
	require.Equal(t, "guides/index.html", path)
}

func TestComposeAll_RootDocumentCollidesWithGeneratedPage(t *testing.T) {
	for _, name := range []string{"index.md", "toc.md"} {
		c := newFixture(t, Meta{BundleTitle: "Handbook"}, []fixtureDoc{
			{name, "Authored", "<p>authored</p>\n"},
			{"guides/other.md", "Other", "<p>Other</p>\n"},
		}, nil)

		_, err := c.ComposeAll()
		require.Error(t, err, name)
		require.Contains(t, err.Error(), "output path collision", name)
	}
}

func TestShell_ContainsStylesheetLinkAndTitle(t *testing.T) {
	c := defaultFixture(t)
	doc, _ := c.docs.ByPath("guides/basic-usage.md")
	page, err := c.ContentPage(doc)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(page.HTML, "<!DOCTYPE html>"))
	require.Contains(t, page.HTML, `<link rel="stylesheet" href="../style.css">`)
	require.Contains(t, page.HTML, "<title>Basic Usage — Handbook</title>")
}
