package relpath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelativeLink_SiblingHasZeroTraversal(t *testing.T) {
	got := DocumentLink("guides/basic-usage.md", "guides/advanced-features.md")
	require.Equal(t, "advanced-features.html", got)
}

func TestRelativeLink_CrossSection(t *testing.T) {
	got := DocumentLink("guides/basic-usage.md", "getting-started/installation.md")
	require.Equal(t, "../getting-started/installation.html", got)
}

func TestRelativeLink_RootToNested(t *testing.T) {
	got := DocumentLink("index.md", "guides/deep/topic.md")
	require.Equal(t, "guides/deep/topic.html", got)
}

func TestRelativeLink_NestedToRoot(t *testing.T) {
	got := DocumentLink("guides/deep/topic.md", "index.md")
	require.Equal(t, "../../index.html", got)
}

func TestRelativeLink_SharedPrefixPartialDivergence(t *testing.T) {
	got := DocumentLink("a/b/c/doc.md", "a/b/x/other.md")
	require.Equal(t, "../x/other.html", got)
}

// Round-trip property: resolving to relative to from, then rebasing the result
// against from's directory, must yield to unchanged.
func TestRelativeLink_RoundTrip(t *testing.T) {
	paths := []string{
		"index.md",
		"guides/basic-usage.md",
		"guides/advanced-features.md",
		"getting-started/installation.md",
		"a/b/c/deep.md",
		"a/other.md",
	}
	for _, from := range paths {
		for _, to := range paths {
			rel := RelativeLink(from, to)

			// Rebase rel against from's directory.
			base := splitSegments(parentDir(from))
			for strings.HasPrefix(rel, "../") {
				require.NotEmpty(t, base, "link %q from %q escapes the tree root", rel, from)
				base = base[:len(base)-1]
				rel = strings.TrimPrefix(rel, "../")
			}
			rebuilt := strings.Join(append(base, splitSegments(rel)...), "/")
			require.Equal(t, to, rebuilt, "from=%s to=%s", from, to)
		}
	}
}

// The number of "../" segments never exceeds the source document's depth.
func TestRelativeLink_NeverEscapesRoot(t *testing.T) {
	from := "a/b/doc.md"
	for _, to := range []string{"x.md", "x/y.md", "a/z.md", "a/b/c/d.md"} {
		rel := RelativeLink(from, to)
		ups := strings.Count(rel, "../")
		require.LessOrEqual(t, ups, 2, "from=%s to=%s rel=%s", from, to, rel)
	}
}

func TestSectionIndexLink(t *testing.T) {
	require.Equal(t, "../getting-started/index.html",
		SectionIndexLink("guides/basic-usage.md", "getting-started"))
	require.Equal(t, "index.html",
		SectionIndexLink("guides/basic-usage.md", "guides"))
	require.Equal(t, "../index.html",
		SectionIndexLink("guides/basic-usage.md", ""))
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, "guides/intro.html", OutputPath("guides/intro.md"))
	require.Equal(t, "guides/intro.html", OutputPath("guides/intro"))
}

func TestResolveAssetPath_DepthScaling(t *testing.T) {
	require.Equal(t, "assets/diagram.png",
		ResolveAssetPath("diagram.png", "readme.md"))
	require.Equal(t, "../assets/diagram.png",
		ResolveAssetPath("diagram.png", "getting-started/installation.md"))
	require.Equal(t, "../../assets/diagram.png",
		ResolveAssetPath("diagram.png", "a/b/doc.md"))
}

func TestResolveAssetPath_InputShapes(t *testing.T) {
	doc := "guides/install.md"
	for _, ref := range []string{
		"/images/x.png",
		"../x.png",
		"./x.png",
		"x.png",
		"deep/nested/x.png",
	} {
		require.Equal(t, "../assets/x.png", ResolveAssetPath(ref, doc), ref)
	}
}

func TestResolveAssetPath_ExternalURLsUntouched(t *testing.T) {
	for _, ref := range []string{
		"https://example.com/pic.png",
		"http://example.com/pic.png",
		"//cdn.example.com/pic.png",
		"mailto:someone@example.com",
	} {
		require.Equal(t, ref, ResolveAssetPath(ref, "guides/install.md"), ref)
	}
}

func TestRewriteAbsoluteLink_BaseURLMatchWithFragment(t *testing.T) {
	got := RewriteAbsoluteLink(
		"https://example.com/docs/guides/advanced-features#Tips",
		"guides/basic-usage.md",
		"https://example.com/docs")
	require.Equal(t, "advanced-features.html#Tips", got)
}

func TestRewriteAbsoluteLink_MarkdownSuffixMapped(t *testing.T) {
	got := RewriteAbsoluteLink(
		"https://example.com/docs/getting-started/installation.md",
		"guides/basic-usage.md",
		"https://example.com/docs")
	require.Equal(t, "../getting-started/installation.html", got)
}

func TestRewriteAbsoluteLink_TrailingSlashStripped(t *testing.T) {
	got := RewriteAbsoluteLink(
		"https://example.com/docs/guides/advanced-features/",
		"guides/basic-usage.md",
		"https://example.com/docs")
	require.Equal(t, "advanced-features.html", got)
}

func TestRewriteAbsoluteLink_BareBaseURLTargetsHome(t *testing.T) {
	got := RewriteAbsoluteLink(
		"https://example.com/docs/",
		"guides/basic-usage.md",
		"https://example.com/docs")
	require.Equal(t, "../index.html", got)
}

func TestRewriteAbsoluteLink_ForeignHrefUntouched(t *testing.T) {
	href := "https://other.example.net/page"
	require.Equal(t, href, RewriteAbsoluteLink(href, "guides/basic-usage.md", "https://example.com/docs"))
}

func TestRewriteAbsoluteLink_SiblingPathPrefixUntouched(t *testing.T) {
	// docs-other shares baseURL's characters but not its path boundary.
	href := "https://example.com/docs-other/page"
	require.Equal(t, href, RewriteAbsoluteLink(href, "guides/basic-usage.md", "https://example.com/docs"))
}

func TestRewriteAbsoluteLink_FragmentOnBaseURLStillRewritten(t *testing.T) {
	got := RewriteAbsoluteLink(
		"https://example.com/docs#Tips",
		"guides/basic-usage.md",
		"https://example.com/docs")
	require.Equal(t, "../index.html#Tips", got)
}

func TestRewriteAbsoluteLink_BaseURLTailAlignsDocumentPrefix(t *testing.T) {
	// The document path carries a "docs" top-level directory matching the
	// baseURL tail; both must land in the same coordinate space.
	got := RewriteAbsoluteLink(
		"https://example.com/docs/guides/advanced-features",
		"docs/guides/basic-usage.md",
		"https://example.com/docs")
	require.Equal(t, "advanced-features.html", got)
}

func TestRewriteAbsoluteLink_EmptyBaseURLDisablesRewriting(t *testing.T) {
	href := "https://example.com/docs/page"
	require.Equal(t, href, RewriteAbsoluteLink(href, "a.md", ""))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "images/x.png", Normalize("/images/x.png"))
	require.Equal(t, "x.png", Normalize("./x.png"))
	require.Equal(t, "", Normalize("/"))
	require.Equal(t, "a/c.png", Normalize("a/b/../c.png"))
}
