package docmodel

import (
	"sort"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
)

// DocumentSet is the deduplicated collection of scanned documents.
//
// Append order is preserved for scanning diagnostics; consumers that need a
// deterministic order use Sorted.
type DocumentSet struct {
	docs  []*Document
	index map[string]*Document
}

// NewDocumentSet creates an empty document set.
func NewDocumentSet() *DocumentSet {
	return &DocumentSet{index: map[string]*Document{}}
}

// Add appends a document. Two documents with an equal relative path is a
// structural build error, not a silent overwrite.
func (s *DocumentSet) Add(doc *Document) error {
	if existing, ok := s.index[doc.RelativePath]; ok {
		return errors.ValidationError("duplicate document relative path").
			WithContext("path", doc.RelativePath).
			WithContext("existing_id", existing.ID).
			Build()
	}
	s.docs = append(s.docs, doc)
	s.index[doc.RelativePath] = doc
	return nil
}

// Len returns the number of documents in the set.
func (s *DocumentSet) Len() int { return len(s.docs) }

// ByPath looks up a document by its relative path.
func (s *DocumentSet) ByPath(relativePath string) (*Document, bool) {
	doc, ok := s.index[relativePath]
	return doc, ok
}

// ByID looks up a document by its identity.
func (s *DocumentSet) ByID(id string) (*Document, bool) {
	for _, doc := range s.docs {
		if doc.ID == id {
			return doc, true
		}
	}
	return nil, false
}

// All returns documents in append order.
func (s *DocumentSet) All() []*Document {
	return s.docs
}

// Sorted returns documents ordered by relative path for deterministic output.
func (s *DocumentSet) Sorted() []*Document {
	out := make([]*Document, len(s.docs))
	copy(out, s.docs)
	sort.Slice(out, func(i, j int) bool { return out[i].RelativePath < out[j].RelativePath })
	return out
}

// AssetSet merges assets from the content root scan and an optional separate
// assets root scan. Within the merged set the relative path is unique; when two
// scans produce the same relative path the later one wins.
type AssetSet struct {
	order []string
	index map[string]AssetReference
}

// NewAssetSet creates an empty asset set.
func NewAssetSet() *AssetSet {
	return &AssetSet{index: map[string]AssetReference{}}
}

// Put inserts or overrides an asset by relative path. It reports whether an
// earlier entry was replaced.
func (s *AssetSet) Put(ref AssetReference) (replaced bool) {
	if _, ok := s.index[ref.RelativePath]; ok {
		s.index[ref.RelativePath] = ref
		return true
	}
	s.order = append(s.order, ref.RelativePath)
	s.index[ref.RelativePath] = ref
	return false
}

// Len returns the number of distinct relative paths in the set.
func (s *AssetSet) Len() int { return len(s.order) }

// All returns assets in first-seen order.
func (s *AssetSet) All() []AssetReference {
	out := make([]AssetReference, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.index[key])
	}
	return out
}

// FlatCollision names the two sources that flattened to the same file name.
type FlatCollision struct {
	FlatName string
	Kept     string // source path that won
	Dropped  string // source path that was shadowed
}

// FlatManifest flattens the set by bare file name for the assets/ directory.
// Later entries win; every shadowing is reported so the build can surface a
// warning instead of swallowing the overwrite.
func (s *AssetSet) FlatManifest() (map[string]string, []FlatCollision) {
	manifest := map[string]string{}
	var collisions []FlatCollision
	for _, key := range s.order {
		ref := s.index[key]
		name := ref.FlatName()
		if prev, ok := manifest[name]; ok && prev != ref.SourcePath {
			collisions = append(collisions, FlatCollision{FlatName: name, Kept: ref.SourcePath, Dropped: prev})
		}
		manifest[name] = ref.SourcePath
	}
	return manifest, collisions
}
