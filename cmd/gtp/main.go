// Command gtp runs the "Getting to Philosophy" battery test: walk each
// seed article's first-link chain until it reaches Philosophy, loops,
// or dead-ends, appending one telemetry record per page load.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thcipriani/getting-to-philosophy-battery-test/config"
)

var rootCmd = &cobra.Command{
	Use:   "gtp",
	Short: "Getting to Philosophy battery test",
	Long: "Repeatedly follows the first valid lead-section link of each seed\n" +
		"article and records whether the chain reaches Philosophy, loops, or\n" +
		"dead-ends, logging device telemetry (load, battery) per page load.",
	SilenceUsage: true,
	RunE:         runWalk,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
