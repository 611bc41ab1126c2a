// Command gtp-mcp exposes the first-link extractor and the article
// walk as MCP tools over stdio. It fetches pages with the browserless
// HTTP renderer, so no Chromium is required.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thcipriani/getting-to-philosophy-battery-test/config"
	"github.com/thcipriani/getting-to-philosophy-battery-test/extractor"
	"github.com/thcipriani/getting-to-philosophy-battery-test/renderer"
	"github.com/thcipriani/getting-to-philosophy-battery-test/report"
	"github.com/thcipriani/getting-to-philosophy-battery-test/traversal"
	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

const defaultMaxSteps = 64

func main() {
	cfg := config.Load()
	site := &wiki.Site{
		ArticleBase: cfg.Site.ArticleBase,
		TargetTitle: cfg.Site.TargetTitle,
	}

	s := server.NewMCPServer(
		"getting-to-philosophy",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	firstLinkTool := mcp.NewTool("first_link",
		mcp.WithDescription("Return the first valid body-text link of an encyclopedia article, applying the Getting-to-Philosophy exclusion rules (parenthetical asides, citations, non-article namespaces, red links)."),
		mcp.WithString("page",
			mcp.Required(),
			mcp.Description("Article title or full article URL"),
		),
	)
	s.AddTool(firstLinkTool, handleFirstLink(site, cfg))

	walkTool := mcp.NewTool("walk",
		mcp.WithDescription("Follow first links from an article until the chain reaches Philosophy, loops back on itself, or dead-ends. Returns the outcome and the full page path."),
		mcp.WithString("page",
			mcp.Required(),
			mcp.Description("Article title or full article URL to start from"),
		),
		mcp.WithNumber("max_steps",
			mcp.Description(fmt.Sprintf("Maximum page fetches before giving up (default: %d)", defaultMaxSteps)),
		),
	)
	s.AddTool(walkTool, handleWalk(site, cfg))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleFirstLink(site *wiki.Site, cfg *config.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		page, err := request.RequireString("page")
		if err != nil {
			return mcp.NewToolResultError("page is required"), nil
		}

		rend := renderer.NewHTTP(cfg.Browser.Proxy, cfg.Renderer)
		defer rend.Close()

		pageURL := site.PageURL(page)
		content, err := rend.Render(ctx, pageURL)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
		}

		next, ok := extractor.FirstValidLink(site, content)
		if !ok {
			return mcp.NewToolResultText("no link found for " + pageURL), nil
		}
		return mcp.NewToolResultText(next), nil
	}
}

func handleWalk(site *wiki.Site, cfg *config.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		page, err := request.RequireString("page")
		if err != nil {
			return mcp.NewToolResultError("page is required"), nil
		}

		maxSteps := defaultMaxSteps
		if raw, ok := request.GetArguments()["max_steps"]; ok {
			if n, isNum := raw.(float64); isNum && n > 0 {
				maxSteps = int(n)
			}
		}

		rend := renderer.NewHTTP(cfg.Browser.Proxy, cfg.Renderer)
		defer rend.Close()

		engine := traversal.NewEngine(site, &stepLimited{inner: rend, remaining: maxSteps}, nil)
		outcome, err := engine.Walk(ctx, site.PageURL(page))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("walk failed: %v", err)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s for %s (%d pages)\n", report.Label(outcome.Termination), outcome.Seed, len(outcome.Path))
		for _, p := range outcome.Path {
			sb.WriteString("- " + p + "\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// stepLimited caps the number of page fetches one walk may perform.
// Exhausting the budget surfaces as a render failure, which aborts the
// walk the same way any fatal fetch error would.
type stepLimited struct {
	inner     traversal.Renderer
	remaining int
}

func (s *stepLimited) Render(ctx context.Context, pageURL string) (*wiki.ArticleContent, error) {
	if s.remaining <= 0 {
		return nil, fmt.Errorf("step budget exhausted before reaching an outcome")
	}
	s.remaining--
	return s.inner.Render(ctx, pageURL)
}
