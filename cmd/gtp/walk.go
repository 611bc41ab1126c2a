package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thcipriani/getting-to-philosophy-battery-test/api"
	"github.com/thcipriani/getting-to-philosophy-battery-test/config"
	"github.com/thcipriani/getting-to-philosophy-battery-test/renderer"
	"github.com/thcipriani/getting-to-philosophy-battery-test/report"
	"github.com/thcipriani/getting-to-philosophy-battery-test/seeds"
	"github.com/thcipriani/getting-to-philosophy-battery-test/telemetry"
	"github.com/thcipriani/getting-to-philosophy-battery-test/traversal"
	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

var walkFlags struct {
	input    string
	output   string
	passes   int
	engine   string
	reportMD string
	serve    bool
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&walkFlags.input, "input", "i", "", "yaml file of pages to test")
	f.StringVarP(&walkFlags.output, "output", "o", "", "csv file to write battery test results to")
	f.IntVar(&walkFlags.passes, "passes", 0, "number of passes over the seed list (0 = until interrupted)")
	f.StringVar(&walkFlags.engine, "engine", "", "page renderer: rod or http")
	f.StringVar(&walkFlags.reportMD, "report", "", "write a per-pass markdown report to this file")
	f.BoolVar(&walkFlags.serve, "serve", false, "expose the status API while walking")
}

// pageRenderer is what the driver needs from either renderer: fetch
// pages, and release the underlying resource on every exit path.
type pageRenderer interface {
	traversal.Renderer
	Close()
}

func runWalk(cmd *cobra.Command, _ []string) error {
	// ── 1. Configuration (env, then flag overrides) ─────────────────
	cfg := config.Load()
	applyFlagOverrides(cmd, cfg)
	initLogger(cfg.Log)

	site := &wiki.Site{
		ArticleBase: cfg.Site.ArticleBase,
		TargetTitle: cfg.Site.TargetTitle,
	}
	slog.Info("battery test starting",
		"input", cfg.Walk.Input,
		"output", cfg.Walk.Output,
		"engine", cfg.Renderer.Engine,
		"target", site.TargetURL(),
	)

	// ── 2. Seed list (fatal if malformed) ───────────────────────────
	pages, err := seeds.Load(cfg.Walk.Input, site)
	if err != nil {
		return err
	}
	slog.Info("seed pages loaded", "count", len(pages))

	// ── 3. Telemetry sink ───────────────────────────────────────────
	batteryLog, err := telemetry.Open(cfg.Walk.Output)
	if err != nil {
		return err
	}
	defer batteryLog.Close()

	// ── 4. Renderer (released on all exit paths via defer) ──────────
	rend, err := buildRenderer(cfg)
	if err != nil {
		return err
	}
	defer rend.Close()

	// ── 5. Interrupt handling ───────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 6. Engine, tracker, optional status server ──────────────────
	engine := traversal.NewEngine(site, rend, batteryLog)
	tracker := traversal.NewTracker()
	engine.SetTracker(tracker)

	if cfg.Server.Enabled {
		startStatusServer(ctx, cfg.Server, tracker)
	}

	// ── 7. Pass driver ──────────────────────────────────────────────
	reporter := report.New(cmd.OutOrStdout())
	for pass := 1; cfg.Walk.Passes <= 0 || pass <= cfg.Walk.Passes; pass++ {
		slog.Info("starting battery test pass", "pass", pass)
		tracker.StartPass(pass, len(pages))

		outcomes, runErr := engine.Run(ctx, pages)
		reporter.Pass(pass, outcomes)

		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				slog.Info("interrupt received, exiting", "pass", pass)
				return nil
			}
			return runErr
		}

		if cfg.Walk.ReportPath != "" {
			if mdErr := report.WriteMarkdown(cfg.Walk.ReportPath, pass, outcomes); mdErr != nil {
				slog.Warn("markdown report failed", "path", cfg.Walk.ReportPath, "error", mdErr)
			}
		}
	}
	return nil
}

// applyFlagOverrides lets explicit flags win over environment config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("input") {
		cfg.Walk.Input = walkFlags.input
	}
	if f.Changed("output") {
		cfg.Walk.Output = walkFlags.output
	}
	if f.Changed("passes") {
		cfg.Walk.Passes = walkFlags.passes
	}
	if f.Changed("engine") {
		cfg.Renderer.Engine = walkFlags.engine
	}
	if f.Changed("report") {
		cfg.Walk.ReportPath = walkFlags.reportMD
	}
	if f.Changed("serve") {
		cfg.Server.Enabled = walkFlags.serve
	}
}

func buildRenderer(cfg *config.Config) (pageRenderer, error) {
	switch cfg.Renderer.Engine {
	case "http":
		return renderer.NewHTTP(cfg.Browser.Proxy, cfg.Renderer), nil
	case "rod", "":
		return renderer.NewRod(cfg.Browser, cfg.Renderer)
	default:
		return nil, fmt.Errorf("unknown renderer engine %q", cfg.Renderer.Engine)
	}
}

// startStatusServer serves the read-only status API until the walk's
// context is cancelled.
func startStatusServer(ctx context.Context, cfg config.ServerConfig, tracker *traversal.Tracker) {
	router := api.NewRouter(tracker, time.Now(), cfg.Mode)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: router,
	}

	go func() {
		slog.Info("status server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("status server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("status server forced shutdown", "error", err)
		}
	}()
}
