// Package hugodialect implements the built-in "hugo" content provider: Hugo
// source conventions (`_index.md` section metadata, draft front matter flags,
// alert shortcodes) mapped onto the shared document/tree model.
package hugodialect

import (
	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
	"git.home.luguber.info/inful/helpbundler/internal/doctree"
	"git.home.luguber.info/inful/helpbundler/internal/provider"
)

// DialectName is the registry identifier of this provider.
const DialectName = "hugo"

// SectionIndexFile is the reserved per-directory metadata file name. It is
// never compiled into a content page.
const SectionIndexFile = "_index.md"

// ContentExtension marks files that are pages rather than assets.
const ContentExtension = ".md"

const defaultScanWorkers = 4

func init() {
	provider.Register(DialectName, func(opts provider.ScanOptions) provider.ContentProvider {
		return New(opts)
	})
}

// Provider is the Hugo-dialect ContentProvider.
type Provider struct {
	opts provider.ScanOptions
}

// New creates a Provider with the given scan options.
func New(opts provider.ScanOptions) *Provider {
	if opts.Workers < 1 {
		opts.Workers = defaultScanWorkers
	}
	return &Provider{opts: opts}
}

// Name returns the dialect identifier.
func (p *Provider) Name() string { return DialectName }

// BuildFileTree delegates to the shared tree algorithm; this dialect has no
// ordering policy of its own.
func (p *Provider) BuildFileTree(documents []*docmodel.Document, baseName string, directoryMetadata map[string]docmodel.DirectoryMetadata) *doctree.DirectoryNode {
	return doctree.Build(documents, directoryMetadata, baseName)
}
