package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/helpbundler/internal/config"
	apperrors "git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `help:"Number of builds to show" default:"10"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	configureLogging(cfg, root.Verbose)

	if !cfg.History.Enabled {
		return apperrors.ConfigError("history is not enabled in the configuration").Build()
	}
	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No builds recorded yet")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tBUILD\tSTATUS\tDOCS\tPAGES\tWARNINGS\tDURATION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.StartedAt.Local().Format(time.DateTime), e.BuildID, e.Status,
			e.Documents, e.Pages, len(e.Warnings),
			(time.Duration(e.DurationMS) * time.Millisecond).Round(time.Millisecond))
	}
	return tw.Flush()
}
