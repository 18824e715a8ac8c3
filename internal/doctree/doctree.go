// Package doctree assembles the weight-ordered hierarchical tree of directory
// and document nodes that every navigation surface (sidebar, breadcrumbs,
// section indexes) is generated from.
//
// The tree is a derived value: it is rebuilt wholesale from the document set
// and directory metadata, never mutated in place.
package doctree

import (
	"log/slog"
	"path"
	"sort"
	"strings"

	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
	"git.home.luguber.info/inful/helpbundler/internal/logfields"
)

// Node is a tagged tree node: either a DirectoryNode or a DocumentNode.
// The sum is sealed; no other implementations exist.
type Node interface {
	NodeName() string
	Path() string
	OrderWeight() *int

	sealed()
}

// DirectoryNode represents a section: a directory with at least one document
// somewhere below it.
type DirectoryNode struct {
	Name         string
	RelativePath string
	Weight       *int
	Title        string
	Description  string
	Children     []Node
}

func (n *DirectoryNode) NodeName() string  { return n.Name }
func (n *DirectoryNode) Path() string      { return n.RelativePath }
func (n *DirectoryNode) OrderWeight() *int { return n.Weight }
func (n *DirectoryNode) sealed()           {}

// DocumentNode represents one content page in the tree.
type DocumentNode struct {
	Name         string
	RelativePath string
	Weight       *int
	DocumentID   string
}

func (n *DocumentNode) NodeName() string  { return n.Name }
func (n *DocumentNode) Path() string      { return n.RelativePath }
func (n *DocumentNode) OrderWeight() *int { return n.Weight }
func (n *DocumentNode) sealed()           {}

// Build compiles the ordered tree from the document set and per-directory
// metadata. The root is always a DirectoryNode named baseName with an empty
// relative path.
//
// Directories without any descendant document produce no node; metadata keyed
// on such a directory is discarded with a warning.
func Build(documents []*docmodel.Document, directoryMetadata map[string]docmodel.DirectoryMetadata, baseName string) *DirectoryNode {
	byDir := map[string][]*docmodel.Document{}
	for _, doc := range documents {
		dir := doc.Dir()
		byDir[dir] = append(byDir[dir], doc)
	}

	root := &DirectoryNode{Name: baseName, RelativePath: ""}
	root.Children = buildChildren("", byDir, directoryMetadata)

	reportOrphanedMetadata(root, directoryMetadata)
	return root
}

func buildChildren(prefix string, byDir map[string][]*docmodel.Document, meta map[string]docmodel.DirectoryMetadata) []Node {
	var children []Node

	for _, doc := range byDir[prefix] {
		children = append(children, &DocumentNode{
			Name:         path.Base(doc.RelativePath),
			RelativePath: doc.RelativePath,
			Weight:       doc.Weight,
			DocumentID:   doc.ID,
		})
	}

	// Immediate subdirectories holding documents transitively: deduplicate the
	// next path segment past the current prefix across all directory keys.
	subdirs := map[string]struct{}{}
	for dir := range byDir {
		rest, ok := underPrefix(dir, prefix)
		if !ok || rest == "" {
			continue
		}
		next, _, _ := strings.Cut(rest, "/")
		subdirs[next] = struct{}{}
	}

	for name := range subdirs {
		dirPath := name
		if prefix != "" {
			dirPath = prefix + "/" + name
		}
		node := &DirectoryNode{Name: name, RelativePath: dirPath}
		if m, ok := meta[dirPath]; ok {
			node.Weight = m.Weight
			node.Title = m.Title
			node.Description = m.Description
		}
		node.Children = buildChildren(dirPath, byDir, meta)
		children = append(children, node)
	}

	sortSiblings(children)
	return children
}

// sortSiblings orders files and subdirectories interleaved in one list:
// weight ascending, missing weight last, name ascending as the tie-break.
func sortSiblings(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		wi, wj := nodes[i].OrderWeight(), nodes[j].OrderWeight()
		switch {
		case wi != nil && wj == nil:
			return true
		case wi == nil && wj != nil:
			return false
		case wi != nil && wj != nil && *wi != *wj:
			return *wi < *wj
		}
		return nodes[i].NodeName() < nodes[j].NodeName()
	})
}

func underPrefix(dir, prefix string) (rest string, ok bool) {
	if prefix == "" {
		if dir == "" {
			return "", false
		}
		return dir, true
	}
	if !strings.HasPrefix(dir, prefix+"/") {
		return "", false
	}
	return strings.TrimPrefix(dir, prefix+"/"), true
}

func reportOrphanedMetadata(root *DirectoryNode, meta map[string]docmodel.DirectoryMetadata) {
	if len(meta) == 0 {
		return
	}
	present := map[string]struct{}{}
	Walk(root, func(n Node) {
		if dir, ok := n.(*DirectoryNode); ok {
			present[dir.RelativePath] = struct{}{}
		}
	})
	for dir := range meta {
		if _, ok := present[dir]; !ok {
			slog.Warn("Directory metadata discarded: no documents below directory", logfields.Section(dir))
		}
	}
}

// Walk visits every node in depth-first order, parents before children.
func Walk(node Node, fn func(Node)) {
	fn(node)
	if dir, ok := node.(*DirectoryNode); ok {
		for _, child := range dir.Children {
			Walk(child, fn)
		}
	}
}

// FindDocument locates the node for a document path and returns the chain of
// ancestor directory nodes from the root (inclusive) down to the node's parent.
func FindDocument(root *DirectoryNode, relativePath string) (ancestors []*DirectoryNode, node *DocumentNode) {
	var walk func(dir *DirectoryNode, trail []*DirectoryNode) bool
	walk = func(dir *DirectoryNode, trail []*DirectoryNode) bool {
		trail = append(trail, dir)
		for _, child := range dir.Children {
			switch c := child.(type) {
			case *DocumentNode:
				if c.RelativePath == relativePath {
					ancestors = append([]*DirectoryNode(nil), trail...)
					node = c
					return true
				}
			case *DirectoryNode:
				if walk(c, trail) {
					return true
				}
			}
		}
		return false
	}
	walk(root, nil)
	return ancestors, node
}

// Sections returns every DirectoryNode in the tree except the root, in
// depth-first order.
func Sections(root *DirectoryNode) []*DirectoryNode {
	var out []*DirectoryNode
	Walk(root, func(n Node) {
		if dir, ok := n.(*DirectoryNode); ok && dir != root {
			out = append(out, dir)
		}
	})
	return out
}
