// Package extractor selects "the first link in the body text" of an
// article: the first hyperlink in the rendered lead section that a
// human reader chasing article chains would actually follow.
//
// The scan is a pure function of the captured content. It walks the
// lead blocks in document order with a running parenthetical-depth
// counter, so no DOM mutation is ever needed to skip the leading
// pronunciation/etymology asides.
package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

// FirstValidLink returns the absolute URL of the first valid hyperlink
// in content's lead section, in document order. ok is false when no
// candidate passes — a dead end, not an error.
func FirstValidLink(site *wiki.Site, content *wiki.ArticleContent) (href string, ok bool) {
	base, err := url.Parse(content.URL)
	if err != nil {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.LeadHTML))
	if err != nil {
		return "", false
	}

	scan := &leadScan{site: site, base: base, page: content.URL}
	body := doc.Find("body")
	for _, n := range body.Nodes {
		if href, ok := scan.walk(n); ok {
			return href, true
		}
	}
	return "", false
}

// leadScan holds the scan state threaded through one walk of the lead
// blocks. Parenthetical depth spans block boundaries: the counter is
// initialized once per article, not once per paragraph.
type leadScan struct {
	site *wiki.Site
	base *url.URL
	page string

	// depth is the current parenthetical nesting depth.
	depth int

	// firstGroupClosed flips once the first balanced top-level
	// parenthetical group has fully closed. Links inside that first
	// group are discarded; after it closes, punctuation no longer
	// disqualifies anything.
	firstGroupClosed bool
}

// walk scans n's subtree left to right, returning the first valid link.
func (s *leadScan) walk(n *html.Node) (string, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			s.consumeText(c.Data)

		case c.Type == html.ElementNode && c.Data == "a":
			// Eligibility is decided at the moment the anchor is
			// encountered, before its own text is consumed.
			if s.eligible() {
				if href, ok := s.resolveCandidate(c); ok {
					return href, true
				}
			}
			// The anchor text still participates in depth tracking.
			if href, ok := s.walk(c); ok {
				return href, true
			}

		case c.Type == html.ElementNode:
			if href, ok := s.walk(c); ok {
				return href, true
			}
		}
	}
	return "", false
}

// eligible reports whether a link found right now is outside the
// skipped leading parenthetical.
func (s *leadScan) eligible() bool {
	return s.depth == 0 || s.firstGroupClosed
}

// consumeText updates parenthetical state for one text run. A stray
// ')' at depth zero is a no-op: it neither goes negative nor counts as
// closing a group.
func (s *leadScan) consumeText(text string) {
	for _, r := range text {
		switch r {
		case '(':
			s.depth++
		case ')':
			if s.depth > 0 {
				s.depth--
				if s.depth == 0 {
					s.firstGroupClosed = true
				}
			}
		}
	}
}

// resolveCandidate resolves the anchor's target against the current
// page and applies the validity rules. Anchors with missing or
// malformed hrefs are skipped without aborting the scan.
func (s *leadScan) resolveCandidate(a *html.Node) (string, bool) {
	var rawHref, class string
	for _, attr := range a.Attr {
		switch attr.Key {
		case "href":
			rawHref = attr.Val
		case "class":
			class = attr.Val
		}
	}
	if rawHref == "" {
		return "", false
	}

	resolved, err := s.base.Parse(rawHref)
	if err != nil {
		return "", false
	}

	candidate := linkCandidate{
		rawHref:  rawHref,
		resolved: resolved,
		class:    class,
	}
	if !isLinkValid(s.site, s.page, candidate) {
		return "", false
	}
	return resolved.String(), true
}
