package extractor

import (
	"net/url"
	"strings"

	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

// citeNoteMarker is the reserved fragment prefix MediaWiki generates
// for footnote back-references ("[1]" superscripts).
const citeNoteMarker = "cite_note"

// redLinkClass is the class MediaWiki renders on links whose target
// article does not exist.
const redLinkClass = "new"

// linkCandidate is one anchor under consideration, with its resolved
// target and presentation marker.
type linkCandidate struct {
	rawHref  string
	resolved *url.URL
	class    string
}

// isLinkValid applies the exclusion rules to a single candidate. All
// rules must hold for the link to be followed.
func isLinkValid(site *wiki.Site, currentPage string, c linkCandidate) bool {
	abs := c.resolved.String()

	// Article-namespace prefix: external sites and non-article paths
	// (/w/index.php, api endpoints) are out.
	if !site.IsArticleURL(abs) {
		return false
	}

	// Footnote markers jump to the references section, not to another
	// article.
	if strings.Contains(abs, citeNoteMarker) {
		return false
	}

	// Non-article namespaces (Help:, Category:, ...). Qualified-prefix
	// match only, so titles like Helping_Hand survive.
	if site.InExcludedNamespace(abs) {
		return false
	}

	// Red links render like links but lead nowhere yet.
	if isRedLink(c.class) || strings.Contains(c.resolved.RawQuery, "redlink=1") {
		return false
	}

	// Same-page anchors. Namespace and citation filtering catches most
	// of these, but a table-of-contents style fragment link would
	// otherwise send the walk back to the page it is already on.
	if strings.HasPrefix(c.rawHref, "#") || strings.HasPrefix(abs, currentPage+"#") {
		return false
	}

	return true
}

// isRedLink checks the anchor's class attribute for the red-link
// marker as a whole token, not a substring.
func isRedLink(class string) bool {
	for _, f := range strings.Fields(class) {
		if f == redLinkClass {
			return true
		}
	}
	return false
}
