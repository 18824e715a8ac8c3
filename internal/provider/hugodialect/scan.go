package hugodialect

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
	"git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/frontmatter"
	"git.home.luguber.info/inful/helpbundler/internal/logfields"
	"git.home.luguber.info/inful/helpbundler/internal/markdown"
	"git.home.luguber.info/inful/helpbundler/internal/provider"
)

var titleCaser = cases.Title(language.English)

type scanResult struct {
	doc     *docmodel.Document
	warning *provider.Warning
	skipped bool
}

// ScanDocuments walks root recursively and parses every content file with
// bounded parallelism. Hidden entries and the reserved section index file are
// skipped; a single file's failure is logged, recorded as a warning, and never
// aborts the scan. Results are aggregated at a single fan-in point.
func (p *Provider) ScanDocuments(ctx context.Context, root string) (*docmodel.DocumentSet, *provider.ScanReport, error) {
	paths, err := p.collectContentPaths(root)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryFileSystem, "content root walk failed").
			WithContext("root", root).Build()
	}

	jobs := make(chan string)
	results := make(chan scanResult)

	var wg sync.WaitGroup
	for i := 0; i < p.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				results <- p.parseFile(root, rel)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, rel := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- rel:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	set := docmodel.NewDocumentSet()
	report := &provider.ScanReport{}
	for res := range results {
		report.Scanned++
		if res.warning != nil {
			report.Warn(res.warning.File, res.warning.Message)
		}
		if res.skipped || res.doc == nil {
			report.Skipped++
			continue
		}
		if err := set.Add(res.doc); err != nil {
			// Duplicate relative path after normalization is a structural
			// error: drain the remaining results, then abort the run.
			for range results {
			}
			return nil, report, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, report, errors.WrapError(err, errors.CategoryScan, "scan canceled").Build()
	}

	slog.Info("Content scan complete",
		logfields.Provider(DialectName),
		logfields.Documents(set.Len()),
		logfields.Warnings(len(report.Warnings)))
	return set, report, nil
}

// collectContentPaths gathers content-file paths relative to root, skipping
// hidden entries and metadata-only files. The slice is walk-ordered and
// deterministic.
func (p *Provider) collectContentPaths(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(pathname string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") && pathname != root {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if !strings.HasSuffix(name, ContentExtension) || name == SectionIndexFile {
			return nil
		}
		rel, err := filepath.Rel(root, pathname)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	return paths, err
}

func (p *Provider) parseFile(root, rel string) scanResult {
	warnSkip := func(msg string, err error) scanResult {
		slog.Warn("Skipping document", logfields.File(rel), logfields.Error(err))
		return scanResult{warning: &provider.Warning{File: rel, Message: msg}, skipped: true}
	}

	raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return warnSkip("unreadable file", err)
	}

	extracted, err := frontmatter.Extract(raw)
	if err != nil {
		return warnSkip("malformed front matter", err)
	}

	var warning *provider.Warning
	if extracted.Dialect == frontmatter.DialectTOML {
		// Recognized but unparsed; proceed with empty metadata and surface it.
		slog.Warn("TOML front matter is not parsed; continuing with empty metadata", logfields.File(rel))
		warning = &provider.Warning{File: rel, Message: "TOML front matter not parsed"}
	}

	meta := extracted.Metadata
	if meta.Draft && !p.opts.IncludeDrafts {
		slog.Debug("Excluding draft document", logfields.File(rel))
		return scanResult{warning: warning, skipped: true}
	}

	doc, err := docmodel.NewDocument(rel)
	if err != nil {
		return warnSkip("invalid relative path", err)
	}

	doc.Title = meta.Title
	if doc.Title == "" {
		doc.Title = titleFromFileName(rel)
	}
	doc.Description = meta.Description
	doc.Keywords = meta.Keywords
	doc.Date = meta.Date
	doc.Weight = meta.Weight
	doc.Draft = meta.Draft
	doc.Aliases = meta.Aliases
	doc.Tags = meta.Tags
	doc.Categories = meta.Categories
	doc.Custom = meta.Custom
	doc.RawBody = p.ProcessShortcodes(string(extracted.Body))

	html, err := markdown.ToHTML([]byte(doc.RawBody))
	if err != nil {
		return warnSkip("markdown conversion failed", err)
	}
	doc.SetRenderedHTML(html)

	return scanResult{doc: doc, warning: warning}
}

// titleFromFileName derives a display title from a file name:
// "basic-usage.md" becomes "Basic Usage".
func titleFromFileName(rel string) string {
	base := strings.TrimSuffix(filepath.Base(rel), ContentExtension)
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return titleCaser.String(base)
}
