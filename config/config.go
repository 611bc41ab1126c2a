package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Site     SiteConfig
	Browser  BrowserConfig
	Renderer RendererConfig
	Walk     WalkConfig
	Server   ServerConfig
	Log      LogConfig
}

// SiteConfig identifies the source encyclopedia and the target page.
type SiteConfig struct {
	// ArticleBase is the canonical article-namespace URL prefix,
	// without a trailing slash.
	ArticleBase string // default: "https://en.wikipedia.org/wiki"

	// TargetTitle is the article the chains are expected to reach.
	TargetTitle string // default: "Philosophy"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is the proxy URL for all page loads.
	Proxy string

	// Stealth toggles stealth JS injection before navigation.
	Stealth bool // default: false
}

// RendererConfig controls page rendering behavior for either engine.
type RendererConfig struct {
	// Engine selects the renderer: "rod" (headless browser) or "http"
	// (plain fetch with a Chrome TLS fingerprint).
	Engine string // default: "rod"

	// NavTimeout is the deadline for a single page render.
	NavTimeout time.Duration // default: 30s

	// PageEvery is the minimum spacing between page loads, so long
	// runs stay polite to the source site.
	PageEvery time.Duration // default: 1s
}

// WalkConfig controls the traversal driver.
type WalkConfig struct {
	// Input is the YAML file listing seed pages.
	Input string // default: "pageviews.wmcloud.org-top400.yaml"

	// Output is the CSV file the battery log appends to.
	Output string // default: "philosophy-battery-test.csv"

	// Passes bounds how many times the seed list is walked.
	// 0 means run until interrupted.
	Passes int // default: 0

	// ReportPath, when set, is where the per-pass markdown report is
	// written.
	ReportPath string
}

// ServerConfig controls the optional status HTTP server.
type ServerConfig struct {
	Enabled bool   // default: false
	Host    string // default: "127.0.0.1"
	Port    int    // default: 8080
	Mode    string // "debug", "release", "test"; default: "release"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Site: SiteConfig{
			ArticleBase: envOr("GTP_ARTICLE_BASE", "https://en.wikipedia.org/wiki"),
			TargetTitle: envOr("GTP_TARGET", "Philosophy"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("GTP_HEADLESS", true),
			NoSandbox:  envBoolOr("GTP_NO_SANDBOX", false),
			BrowserBin: os.Getenv("GTP_BROWSER_BIN"),
			Proxy:      os.Getenv("GTP_PROXY"),
			Stealth:    envBoolOr("GTP_STEALTH", false),
		},
		Renderer: RendererConfig{
			Engine:     envOr("GTP_ENGINE", "rod"),
			NavTimeout: envDurationOr("GTP_NAV_TIMEOUT", 30*time.Second),
			PageEvery:  envDurationOr("GTP_PAGE_EVERY", time.Second),
		},
		Walk: WalkConfig{
			Input:      envOr("GTP_INPUT", "pageviews.wmcloud.org-top400.yaml"),
			Output:     envOr("GTP_OUTPUT", "philosophy-battery-test.csv"),
			Passes:     envIntOr("GTP_PASSES", 0),
			ReportPath: os.Getenv("GTP_REPORT"),
		},
		Server: ServerConfig{
			Enabled: envBoolOr("GTP_SERVE", false),
			Host:    envOr("GTP_HOST", "127.0.0.1"),
			Port:    envIntOr("GTP_PORT", 8080),
			Mode:    envOr("GTP_MODE", "release"),
		},
		Log: LogConfig{
			Level:  envOr("GTP_LOG_LEVEL", "info"),
			Format: envOr("GTP_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return fallback
}
