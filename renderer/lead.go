package renderer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/thcipriani/getting-to-philosophy-battery-test/models"
)

// contentRoot matches the MediaWiki parser output container. The
// mw-content-ltr variant is preferred; plain mw-parser-output covers
// older skins and test fixtures.
var contentRoot = cascadia.MustCompile(".mw-content-ltr.mw-parser-output, .mw-parser-output")

// leadBlockTags are the block elements the extractor scans. Hatnote
// divs, infobox tables and figure captions are deliberately absent:
// their links precede the body text but a reader skips them.
var leadBlockTags = map[string]struct{}{
	"p":  {},
	"ul": {},
	"ol": {},
}

// leadHTML cuts the lead-section fragment out of a rendered page: the
// paragraph and list children of the content root, in document order,
// stopping at the first section heading. A page without a content root
// is a render failure (unexpected markup), not a dead end.
func leadHTML(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", models.NewWalkError(models.ErrCodeContent, "unparseable page markup", err)
	}

	root := doc.FindMatcher(contentRoot).First()
	if root.Length() == 0 {
		return "", models.NewWalkError(models.ErrCodeContent, "content root not found in rendered page", nil)
	}

	var b strings.Builder
	root.Children().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		tag := goquery.NodeName(s)
		switch tag {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			return false
		case "div":
			// Modern skins wrap headings: <div class="mw-heading"><h2>.
			if s.HasClass("mw-heading") {
				return false
			}
			return true
		}
		if _, ok := leadBlockTags[tag]; !ok {
			return true
		}
		if h, err := goquery.OuterHtml(s); err == nil {
			b.WriteString(h)
		}
		return true
	})

	return b.String(), nil
}
