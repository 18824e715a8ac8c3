package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/helpbundler/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output        string `short:"o" help:"Output directory, overrides output.directory"`
	Theme         string `help:"Theme name, overrides theme.name"`
	IncludeDrafts bool   `help:"Include documents marked draft"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	b.applyOverrides(cfg)
	configureLogging(cfg, root.Verbose)

	builder, cleanup := newBuilder(cfg)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := builder.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Built %s: %d documents, %d pages, %d assets (%d warnings) in %s\n",
		cfg.Output.Directory, report.Documents, report.Pages, report.Assets,
		len(report.Warnings), report.Duration.Round(time.Millisecond))
	for _, w := range report.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	return nil
}

func (b *BuildCmd) applyOverrides(cfg *config.Config) {
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if b.Theme != "" {
		cfg.Theme.Name = b.Theme
	}
	if b.IncludeDrafts {
		cfg.Scan.IncludeDrafts = true
	}
}
