// Package relpath computes every relative path emitted into the compiled
// bundle: document to document, document to section index, document to asset,
// and base-URL-aware absolute link rewriting.
//
// The resolvers never return an error. A malformed input degrades to the least
// transformed string that can be constructed; escaping the tree root is
// prevented by construction and covered by tests rather than runtime checks.
package relpath

import (
	"path"
	"strings"
)

// AssetDirName is the flat directory at the bundle root that receives every
// copied asset.
const AssetDirName = "assets"

// RelativeLink computes the shortest relative path from the directory
// containing from to the file to. Both arguments are slash-separated paths
// relative to the same tree root.
//
// A sibling target yields the bare file name with zero "../"; every level of
// divergence yields exactly one "../".
func RelativeLink(from, to string) string {
	fromSegs := splitSegments(parentDir(from))
	toSegs := splitSegments(to)

	common := 0
	for common < len(fromSegs) && common < len(toSegs) && fromSegs[common] == toSegs[common] {
		common++
	}

	var b strings.Builder
	for i := common; i < len(fromSegs); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(toSegs[common:], "/"))

	if b.Len() == 0 {
		// from's directory and to reduce to the same place with nothing left to
		// descend; fall back to the bare target name.
		return path.Base(to)
	}
	return b.String()
}

// OutputPath maps a source document path to its output page path (.md → .html).
func OutputPath(docPath string) string {
	if strings.HasSuffix(docPath, ".md") {
		return strings.TrimSuffix(docPath, ".md") + ".html"
	}
	return docPath + ".html"
}

// DocumentLink resolves the link from one document's page to another's.
func DocumentLink(from, to string) string {
	return RelativeLink(from, OutputPath(to))
}

// SectionIndexLink resolves the link from a document's page to a section's
// generated index page. An empty dirPath targets the bundle root index.
func SectionIndexLink(from, dirPath string) string {
	target := "index.html"
	if dirPath != "" {
		target = dirPath + "/index.html"
	}
	return RelativeLink(from, target)
}

// ResolveAssetPath rewrites a raw src/href value authored inside a document to
// a path reaching the flat assets directory at the tree root. External URLs are
// returned untouched. Only the final file name of the reference is preserved;
// the asset store is flat by file name.
//
// The number of "../" segments equals the document's own nesting depth.
func ResolveAssetPath(originalRef, documentPath string) string {
	if IsExternal(originalRef) {
		return originalRef
	}

	name := path.Base(strings.TrimSuffix(originalRef, "/"))
	if name == "" || name == "." || name == ".." || name == "/" {
		return originalRef
	}

	depth := strings.Count(documentPath, "/")
	return strings.Repeat("../", depth) + AssetDirName + "/" + name
}

// RewriteAbsoluteLink rewrites a site-absolute href into a tree-relative link
// when it starts with baseURL. Any other href is returned untouched.
//
// The rewritten target maps a .md suffix (or a missing extension) to .html,
// drops a trailing slash, and keeps a #fragment intact. The current document's
// path is aligned into the same coordinate space by stripping a leading
// directory that matches the tail segment of baseURL.
func RewriteAbsoluteLink(href, documentPath, baseURL string) string {
	if baseURL == "" || !strings.HasPrefix(href, baseURL) {
		return href
	}

	rest := strings.TrimPrefix(href, baseURL)
	// A bare prefix match is not enough: the baseURL must end on a path
	// boundary, or https://host/docs would claim https://host/docs-other.
	if rest != "" && !strings.HasSuffix(baseURL, "/") && rest[0] != '/' && rest[0] != '#' {
		return href
	}
	fragment := ""
	if idx := strings.IndexByte(rest, '#'); idx >= 0 {
		fragment = rest[idx:]
		rest = rest[:idx]
	}

	rest = strings.Trim(rest, "/")
	if rest == "" {
		return SectionIndexLink(alignDocumentPath(documentPath, baseURL), "") + fragment
	}

	target := rest
	switch {
	case strings.HasSuffix(target, ".md"):
		target = strings.TrimSuffix(target, ".md") + ".html"
	case path.Ext(target) == "":
		target += ".html"
	}

	return RelativeLink(alignDocumentPath(documentPath, baseURL), target) + fragment
}

// IsExternal reports whether a reference carries a URL scheme and must be left
// unmodified.
func IsExternal(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "mailto:") ||
		strings.HasPrefix(ref, "//")
}

// Normalize cleans an authored path: root-absolute, "./" and "../" prefixes are
// reduced to a tree-relative form where possible. Inputs that still escape the
// root after cleaning are returned cleaned but otherwise untouched.
func Normalize(p string) string {
	trimmed := strings.TrimPrefix(p, "/")
	cleaned := path.Clean(trimmed)
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// alignDocumentPath strips a leading directory matching baseURL's tail segment
// so site-internal and tree-internal paths share one coordinate space.
func alignDocumentPath(documentPath, baseURL string) string {
	tail := path.Base(strings.TrimSuffix(baseURL, "/"))
	if tail == "" || tail == "." || tail == "/" {
		return documentPath
	}
	return strings.TrimPrefix(documentPath, tail+"/")
}

func parentDir(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

func splitSegments(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
