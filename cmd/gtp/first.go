package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thcipriani/getting-to-philosophy-battery-test/config"
	"github.com/thcipriani/getting-to-philosophy-battery-test/extractor"
	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

var firstFlags struct {
	engine string
}

var firstCmd = &cobra.Command{
	Use:   "first <title-or-url>",
	Short: "Print the first valid link of one article",
	Args:  cobra.ExactArgs(1),
	RunE:  runFirst,
}

func init() {
	firstCmd.Flags().StringVar(&firstFlags.engine, "engine", "http", "page renderer: rod or http")
	rootCmd.AddCommand(firstCmd)
}

func runFirst(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	cfg.Renderer.Engine = firstFlags.engine
	initLogger(cfg.Log)

	site := &wiki.Site{
		ArticleBase: cfg.Site.ArticleBase,
		TargetTitle: cfg.Site.TargetTitle,
	}

	rend, err := buildRenderer(cfg)
	if err != nil {
		return err
	}
	defer rend.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	page := site.PageURL(args[0])
	content, err := rend.Render(ctx, page)
	if err != nil {
		return err
	}

	next, ok := extractor.FirstValidLink(site, content)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "no link found for %s\n", page)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), next)
	return nil
}
