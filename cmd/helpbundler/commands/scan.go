package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/helpbundler/internal/config"
	apperrors "git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/provider"
)

// ScanCmd implements the 'scan' command: discover and list documents without
// building anything.
type ScanCmd struct {
	IncludeDrafts bool `help:"Include documents marked draft"`
}

func (s *ScanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	configureLogging(cfg, root.Verbose)

	if cfg.Source.Git.URL != "" {
		return apperrors.ConfigError("scan requires a local source.content_root").Build()
	}

	prov, err := provider.New(cfg.Scan.Provider, provider.ScanOptions{
		IncludeDrafts: s.IncludeDrafts || cfg.Scan.IncludeDrafts,
		Workers:       cfg.Scan.Workers,
	})
	if err != nil {
		return err
	}

	docs, report, err := prov.ScanDocuments(context.Background(), cfg.Source.ContentRoot)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTITLE\tWEIGHT")
	for _, doc := range docs.Sorted() {
		weight := "-"
		if doc.Weight != nil {
			weight = fmt.Sprintf("%d", *doc.Weight)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", doc.RelativePath, doc.Title, weight)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d documents, %d skipped, %d warnings\n", report.Scanned, report.Skipped, len(report.Warnings))
	for _, w := range report.Warnings {
		fmt.Printf("  warning: %s: %s\n", w.File, w.Message)
	}
	return nil
}
