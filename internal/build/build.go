// Package build orchestrates one bundle build: fetch, scan, tree assembly,
// page composition, and output writing, as a sequence of timed stages.
//
// Structural failures (duplicate paths, empty content) abort the build and
// leave any previous output untouched. Per-file problems surface as warnings
// on the report and the build continues.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/helpbundler/internal/assets"
	"git.home.luguber.info/inful/helpbundler/internal/bundle"
	"git.home.luguber.info/inful/helpbundler/internal/compose"
	"git.home.luguber.info/inful/helpbundler/internal/config"
	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
	"git.home.luguber.info/inful/helpbundler/internal/doctree"
	"git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/fetch"
	"git.home.luguber.info/inful/helpbundler/internal/history"
	"git.home.luguber.info/inful/helpbundler/internal/logfields"
	"git.home.luguber.info/inful/helpbundler/internal/metrics"
	"git.home.luguber.info/inful/helpbundler/internal/provider"
	"git.home.luguber.info/inful/helpbundler/internal/theme"
)

// Stage names used in logs, metrics, and reports.
const (
	StageFetch   = "fetch"
	StageScan    = "scan"
	StageTree    = "tree"
	StageCompose = "compose"
	StageWrite   = "write"
)

// Builder runs bundle builds for one configuration.
type Builder struct {
	cfg      *config.Config
	recorder metrics.Recorder
	history  *history.Store
	fetcher  *fetch.Fetcher
}

// New creates a Builder. Metrics and history are off until injected.
func New(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder attaches a metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	b.recorder = r
	return b
}

// WithHistory attaches a build history store.
func (b *Builder) WithHistory(s *history.Store) *Builder {
	b.history = s
	return b
}

// WithFetcher overrides the content fetcher, for tests.
func (b *Builder) WithFetcher(f *fetch.Fetcher) *Builder {
	b.fetcher = f
	return b
}

// Run executes one build. The returned report is non-nil whenever the build
// got far enough to be identified, including on failure.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		BuildID:    uuid.NewString(),
		BundleName: b.cfg.Bundle.Name,
		StartedAt:  time.Now().UTC(),
	}
	slog.Info("Starting bundle build",
		logfields.BuildID(report.BuildID), slog.String("bundle", b.cfg.Bundle.Name))

	err := b.run(ctx, report)
	report.Duration = time.Since(report.StartedAt)
	report.Status = statusFor(ctx, err, len(report.Warnings))

	b.recorder.ObserveBuildDuration(report.Duration)
	b.recorder.IncBuildOutcome(report.Status)
	b.recorder.SetBuildCounts(report.Documents, report.Pages, report.Assets, len(report.Warnings))
	b.persist(report)

	if err != nil {
		slog.Error("Bundle build failed",
			logfields.BuildID(report.BuildID), logfields.Error(err),
			logfields.DurationMS(float64(report.Duration.Milliseconds())))
		return report, err
	}
	slog.Info("Bundle build finished",
		logfields.BuildID(report.BuildID), slog.String("status", report.Status),
		logfields.Documents(report.Documents), logfields.Pages(report.Pages),
		logfields.Assets(report.Assets), logfields.Warnings(len(report.Warnings)),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func (b *Builder) run(ctx context.Context, report *Report) error {
	th, err := theme.Resolve(b.cfg.Theme.Name, b.cfg.Theme.Stylesheet)
	if err != nil {
		return err
	}
	css, err := th.Stylesheet()
	if err != nil {
		return err
	}

	contentRoot := b.cfg.Source.ContentRoot
	if b.cfg.Source.Git.URL != "" {
		var res fetch.Result
		if err := b.stage(ctx, StageFetch, func() error {
			var ferr error
			res, ferr = b.contentFetcher().Fetch(ctx, fetch.Source{
				URL:      b.cfg.Source.Git.URL,
				Ref:      b.cfg.Source.Git.Ref,
				Subdir:   b.cfg.Source.Git.Subdir,
				Username: b.cfg.Source.Git.Username,
				Token:    b.cfg.Source.Git.Token,
			})
			return ferr
		}); err != nil {
			return err
		}
		contentRoot = res.ContentRoot
		report.SourceHead = res.Head
	}

	prov, err := provider.New(b.cfg.Scan.Provider, provider.ScanOptions{
		IncludeDrafts: b.cfg.Scan.IncludeDrafts,
		Workers:       b.cfg.Scan.Workers,
	})
	if err != nil {
		return err
	}

	var docs *docmodel.DocumentSet
	var dirMeta map[string]docmodel.DirectoryMetadata
	var assetSet *docmodel.AssetSet
	if err := b.stage(ctx, StageScan, func() error {
		var scanReport *provider.ScanReport
		var serr error
		docs, scanReport, serr = prov.ScanDocuments(ctx, contentRoot)
		if serr != nil {
			return serr
		}
		for _, w := range scanReport.Warnings {
			report.AddWarning(fmt.Sprintf("%s: %s", w.File, w.Message))
		}
		if dirMeta, serr = prov.ScanDirectoryMetadata(contentRoot); serr != nil {
			return serr
		}
		if assetSet, serr = assets.Scan(contentRoot, b.cfg.Source.AssetsRoot); serr != nil {
			return serr
		}
		return nil
	}); err != nil {
		return err
	}
	if docs.Len() == 0 {
		return errors.NewError(errors.CategoryValidation, "no documents found in content root").
			WithContext("path", contentRoot).Fatal().Build()
	}
	report.Documents = docs.Len()
	report.Assets = assetSet.Len()
	flatAssets, collisions := assetSet.FlatManifest()
	for _, c := range collisions {
		report.AddWarning(fmt.Sprintf("asset file name collision: %s shadows %s", c.Kept, c.Dropped))
		slog.Warn("Asset file name collision, keeping later file",
			logfields.File(c.FlatName), slog.String("dropped", c.Dropped), slog.String("kept", c.Kept))
	}

	var tree *doctree.DirectoryNode
	if err := b.stage(ctx, StageTree, func() error {
		tree = prov.BuildFileTree(docs.All(), b.cfg.Bundle.Name, dirMeta)
		return nil
	}); err != nil {
		return err
	}

	var pages []compose.Page
	if err := b.stage(ctx, StageCompose, func() error {
		composer := compose.New(tree, docs, compose.Meta{
			BundleTitle: b.cfg.Bundle.Title,
			BaseURL:     b.cfg.Bundle.BaseURL,
		})
		var cerr error
		pages, cerr = composeParallel(ctx, composer, docs, b.cfg.Scan.Workers)
		return cerr
	}); err != nil {
		return err
	}
	report.Pages = len(pages)

	return b.stage(ctx, StageWrite, func() error {
		writer := bundle.NewWriter(b.cfg.Output.Directory)
		if err := writer.Begin(); err != nil {
			return err
		}
		if err := b.writeBundle(writer, pages, css, flatAssets, contentRoot, report); err != nil {
			writer.Abort()
			return err
		}
		return nil
	})
}

func (b *Builder) writeBundle(writer *bundle.Writer, pages []compose.Page, css []byte, flatAssets map[string]string, contentRoot string, report *Report) error {
	for _, page := range pages {
		if err := writer.WritePage(page); err != nil {
			return err
		}
	}
	if err := writer.WriteStylesheet(css); err != nil {
		return err
	}
	if err := writer.CopyAssets(flatAssets); err != nil {
		return err
	}
	manifest := &bundle.Manifest{
		Identifier: b.cfg.Bundle.Identifier,
		BuildID:    report.BuildID,
		Name:       b.cfg.Bundle.Name,
		Title:      b.cfg.Bundle.Title,
		Timestamp:  report.StartedAt,
		Inputs: bundle.Inputs{
			ContentRoot: contentRoot,
			AssetsRoot:  b.cfg.Source.AssetsRoot,
			SourceURL:   b.cfg.Source.Git.URL,
			SourceRef:   b.cfg.Source.Git.Ref,
			Provider:    b.cfg.Scan.Provider,
			Theme:       b.cfg.Theme.Name,
			BaseURL:     b.cfg.Bundle.BaseURL,
			Documents:   report.Documents,
		},
		Warnings: len(report.Warnings),
		Duration: time.Since(report.StartedAt).Milliseconds(),
		Status:   "success",
	}
	if err := writer.WriteManifest(manifest); err != nil {
		return err
	}
	return writer.Promote()
}

// stage runs one named build stage with timing, cancellation, and metrics.
func (b *Builder) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		b.recorder.IncStageResult(name, metrics.ResultCanceled)
		return errors.WrapError(err, errors.CategoryInternal, "build canceled").
			WithContext("stage", name).Build()
	}
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	b.recorder.ObserveStageDuration(name, elapsed)

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFatal
		if ctx.Err() != nil {
			result = metrics.ResultCanceled
		}
	}
	b.recorder.IncStageResult(name, result)
	slog.Debug("Build stage finished",
		logfields.Stage(name), logfields.DurationMS(float64(elapsed.Milliseconds())))
	return err
}

func (b *Builder) contentFetcher() *fetch.Fetcher {
	if b.fetcher != nil {
		return b.fetcher
	}
	return fetch.NewFetcher(b.cfg.Source.Git.Workspace).WithRecorder(b.recorder)
}

func (b *Builder) persist(report *Report) {
	if b.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.history.Record(ctx, report.HistoryEntry()); err != nil {
		slog.Warn("Failed to record build history", logfields.BuildID(report.BuildID), logfields.Error(err))
	}
}

func statusFor(ctx context.Context, err error, warnings int) string {
	switch {
	case err != nil && ctx.Err() != nil:
		return "canceled"
	case err != nil:
		return "failed"
	case warnings > 0:
		return "warning"
	default:
		return "success"
	}
}
