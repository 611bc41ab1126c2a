// Package renderer fetches and renders article pages for the
// traversal engine. Two implementations share the lead-section
// contract: a headless-browser renderer (rod) and a plain HTTP
// renderer with a Chrome TLS fingerprint.
package renderer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
	"golang.org/x/time/rate"

	"github.com/thcipriani/getting-to-philosophy-battery-test/config"
	"github.com/thcipriani/getting-to-philosophy-battery-test/models"
	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

// Rod renders pages in a headless Chromium. The browser session is a
// single shared, stateful resource: one page, reused for every
// navigation, strictly sequentially. Close must run on every exit path
// so an interrupt mid-walk still releases the browser process.
type Rod struct {
	browser    *rod.Browser
	page       *rod.Page
	limiter    *rate.Limiter
	navTimeout time.Duration
}

// NewRod launches a headless browser and opens the single page the
// whole run navigates with.
func NewRod(browserCfg config.BrowserConfig, rendererCfg config.RendererConfig) (*Rod, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.Proxy != "" {
		l = l.Proxy(browserCfg.Proxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewWalkError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewWalkError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.MustClose()
		return nil, models.NewWalkError(
			models.ErrCodeBrowserCrash,
			"failed to open page",
			err,
		)
	}

	// English content regardless of the host machine's locale.
	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		}),
	}.Call(page)

	// Registered once; the script re-runs on every subsequent navigation.
	if browserCfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr)
		}
	}

	return &Rod{
		browser:    browser,
		page:       page,
		limiter:    rate.NewLimiter(rate.Every(rendererCfg.PageEvery), 1),
		navTimeout: rendererCfg.NavTimeout,
	}, nil
}

// Render navigates the shared page to pageURL and captures its content.
//
// Lifecycle:
//
//  1. Pacing            – wait out the politeness interval
//  2. Timeout guard     – per-render deadline on all Rod operations
//  3. Navigate + settle – page load, then DOM-stable wait
//  4. Capture           – rendered HTML + document.title
//  5. Lead extraction   – cut the lead-section fragment
func (r *Rod) Render(ctx context.Context, pageURL string) (*wiki.ArticleContent, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.navTimeout)
	defer cancel()

	p := r.page.Context(ctx)

	if navErr := p.Navigate(pageURL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to "+pageURL+" failed")
	}

	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr)
	}

	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract page HTML")
	}

	title := evalStringOrEmpty(p, `() => document.title`)

	lead, err := leadHTML(rawHTML)
	if err != nil {
		return nil, err
	}

	return &wiki.ArticleContent{
		URL:      pageURL,
		Title:    title,
		RawHTML:  rawHTML,
		LeadHTML: lead,
	}, nil
}

// Close parks the page and kills the browser process. Call this on
// every shutdown path to prevent zombie Chrome processes.
func (r *Rod) Close() {
	slog.Info("renderer shutting down: releasing browser")
	if navErr := r.page.Navigate("about:blank"); navErr != nil {
		slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
	}
	r.browser.MustClose()
	slog.Info("renderer shutdown complete")
}

// evalStringOrEmpty evaluates a JS expression and returns the string
// result, swallowing any errors (optional metadata only).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw errors into typed WalkErrors so the caller
// can tell a timeout from a hard navigation failure.
func categorizeError(err error, msg string) *models.WalkError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewWalkError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewWalkError(models.ErrCodeTimeout, "render canceled", err)
	default:
		return models.NewWalkError(models.ErrCodeNavigation, msg, err)
	}
}
