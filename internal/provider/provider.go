// Package provider defines the capability seam between source content dialects
// and the tree/path pipeline. New dialects register a factory under an
// identifier string; nothing in the tree builder or path resolver changes when
// a dialect is added.
package provider

import (
	"context"

	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
	"git.home.luguber.info/inful/helpbundler/internal/doctree"
)

// ScanOptions carries the injected per-scan configuration. It replaces any
// ambient defaults: callers construct it explicitly from their config.
type ScanOptions struct {
	// IncludeDrafts keeps documents flagged draft in the compiled set.
	IncludeDrafts bool
	// Workers bounds per-file parse parallelism; values < 1 select a default.
	Workers int
}

// Warning is a surfaced per-item diagnostic: the run continued, the item was
// skipped or degraded.
type Warning struct {
	File    string
	Message string
}

// ScanReport aggregates per-item outcomes of a document scan.
type ScanReport struct {
	Scanned  int
	Skipped  int
	Warnings []Warning
}

// Warn appends a warning to the report.
func (r *ScanReport) Warn(file, message string) {
	r.Warnings = append(r.Warnings, Warning{File: file, Message: message})
}

// ContentProvider is the capability interface a source dialect implements.
//
// A single file's failure must never abort a scan: the provider logs it,
// records a warning on the report, and continues.
type ContentProvider interface {
	Name() string

	// ScanDocuments walks root recursively, skipping hidden entries and
	// metadata-only files, and produces the parsed document set.
	ScanDocuments(ctx context.Context, root string) (*docmodel.DocumentSet, *ScanReport, error)

	// ScanDirectoryMetadata finds every reserved metadata file below root and
	// parses its front matter only; bodies are discarded.
	ScanDirectoryMetadata(root string) (map[string]docmodel.DirectoryMetadata, error)

	// BuildFileTree produces the ordered tree. Providers may override grouping
	// or ordering policy; the default delegates to doctree.Build.
	BuildFileTree(documents []*docmodel.Document, baseName string, directoryMetadata map[string]docmodel.DirectoryMetadata) *doctree.DirectoryNode

	// ProcessShortcodes expands dialect-specific inline macros to HTML.
	// It is idempotent on text with no remaining macro syntax; malformed macro
	// syntax is left verbatim.
	ProcessShortcodes(body string) string
}
