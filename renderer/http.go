package renderer

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	tls2 "github.com/refraction-networking/utls"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/thcipriani/getting-to-philosophy-battery-test/config"
	"github.com/thcipriani/getting-to-philosophy-battery-test/models"
	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// HTTP renders pages with a plain GET and a Chrome TLS fingerprint
// (utls). Encyclopedia articles are server-rendered, so this is a
// browserless alternative to Rod — used by the MCP tools and when
// GTP_ENGINE=http.
type HTTP struct {
	proxy      string
	limiter    *rate.Limiter
	navTimeout time.Duration
}

// NewHTTP creates an HTTP renderer.
func NewHTTP(proxy string, rendererCfg config.RendererConfig) *HTTP {
	return &HTTP{
		proxy:      proxy,
		limiter:    rate.NewLimiter(rate.Every(rendererCfg.PageEvery), 1),
		navTimeout: rendererCfg.NavTimeout,
	}
}

// Render fetches pageURL and captures its content.
func (h *HTTP) Render(ctx context.Context, pageURL string) (*wiki.ArticleContent, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.navTimeout)
	defer cancel()

	body, err := h.fetch(ctx, pageURL)
	if err != nil {
		return nil, categorizeError(err, "fetch of "+pageURL+" failed")
	}

	rawHTML := string(body)
	lead, err := leadHTML(rawHTML)
	if err != nil {
		return nil, err
	}

	return &wiki.ArticleContent{
		URL:      pageURL,
		Title:    extractTitle(body),
		RawHTML:  rawHTML,
		LeadHTML: lead,
	}, nil
}

// Close satisfies the renderer lifecycle; the HTTP renderer holds no
// long-lived resource.
func (h *HTTP) Close() {}

// fetch retrieves the URL via plain HTTP with a Chrome TLS fingerprint.
func (h *HTTP) fetch(ctx context.Context, targetURL string) ([]byte, error) {
	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}
	if h.proxy != "" {
		if proxyURL, err := url.Parse(h.proxy); err == nil &&
			(proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, models.NewWalkError(
			models.ErrCodeNavigation,
			"HTTP "+resp.Status+" for "+targetURL,
			nil,
		)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024)) // 10 MB cap
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint
// via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// extractTitle extracts the <title> content from raw HTML bytes.
func extractTitle(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "title" {
				if tokenizer.Next() == html.TextToken {
					return strings.TrimSpace(string(tokenizer.Text()))
				}
				return ""
			}
		}
	}
}
