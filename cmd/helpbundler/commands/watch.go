package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/helpbundler/internal/build"
	"git.home.luguber.info/inful/helpbundler/internal/config"
	apperrors "git.home.luguber.info/inful/helpbundler/internal/errors"
	"git.home.luguber.info/inful/helpbundler/internal/logfields"
	"git.home.luguber.info/inful/helpbundler/internal/metrics"
)

// WatchCmd implements the 'watch' command: build once, then rebuild whenever
// the content root changes. Runs until interrupted.
type WatchCmd struct {
	Metrics string `help:"Serve Prometheus metrics on this address, overrides metrics.listen"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	configureLogging(cfg, root.Verbose)

	if cfg.Source.Git.URL != "" {
		return apperrors.ConfigError("watch mode requires a local source.content_root").Build()
	}

	builder, cleanup := newBuilder(cfg)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listen := cfg.Metrics.Listen
	if w.Metrics != "" {
		listen = w.Metrics
	}
	if listen != "" {
		reg := prom.NewRegistry()
		builder = builder.WithRecorder(metrics.NewPrometheusRecorder(reg))
		go serveMetrics(ctx, listen, reg)
	}

	watcher, err := build.NewWatcher(builder, cfg.Source.ContentRoot,
		time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
	if err != nil {
		return err
	}
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveMetrics(ctx context.Context, listen string, reg *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	server := &http.Server{Addr: listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	slog.Info("Serving metrics", slog.String("listen", listen))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", logfields.Error(err))
	}
}
