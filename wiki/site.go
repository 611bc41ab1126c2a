// Package wiki models the source encyclopedia: the article URL space,
// the non-article namespaces, and the content handed from the renderer
// to the link extractor.
package wiki

import (
	"strings"
)

// nonArticleNamespaces is the fixed set of MediaWiki namespaces whose
// pages never count as articles. A link into any of these is skipped by
// the extractor. Matching is namespace-qualified ("Help:Contents"), so
// an article title that merely starts with one of these words
// ("Helping_Hand") is unaffected.
var nonArticleNamespaces = map[string]struct{}{
	"User":                   {},
	"User_talk":              {},
	"Wikipedia":              {},
	"Wikipedia_talk":         {},
	"File":                   {},
	"File_talk":              {},
	"MediaWiki":              {},
	"MediaWiki_talk":         {},
	"Template":               {},
	"Template_talk":          {},
	"Help":                   {},
	"Help_talk":              {},
	"Category":               {},
	"Category_talk":          {},
	"Portal":                 {},
	"Portal_talk":            {},
	"Draft":                  {},
	"Draft_talk":             {},
	"TimedText":              {},
	"TimedText_talk":         {},
	"Module":                 {},
	"Module_talk":            {},
	"Gadget":                 {},
	"Gadget_talk":            {},
	"Gadget_definition":      {},
	"Gadget_definition_talk": {},
}

// Site describes one MediaWiki installation. Page identity is the full
// article URL; equality is exact string identity, no normalization.
type Site struct {
	// ArticleBase is the canonical article-namespace prefix, without a
	// trailing slash. Example: "https://en.wikipedia.org/wiki".
	ArticleBase string

	// TargetTitle is the article every chain is expected to converge
	// on. Example: "Philosophy".
	TargetTitle string
}

// EnglishWikipedia returns the site every run defaults to.
func EnglishWikipedia() *Site {
	return &Site{
		ArticleBase: "https://en.wikipedia.org/wiki",
		TargetTitle: "Philosophy",
	}
}

// PageURL resolves an article title (or an already-absolute URL) to a
// full page URL. Spaces become underscores, per MediaWiki convention.
func (s *Site) PageURL(title string) string {
	if strings.HasPrefix(title, "http://") || strings.HasPrefix(title, "https://") {
		return title
	}
	return s.ArticleBase + "/" + strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
}

// TargetURL is the full URL of the target article.
func (s *Site) TargetURL() string {
	return s.PageURL(s.TargetTitle)
}

// IsArticleURL reports whether href lies under the site's article
// namespace prefix.
func (s *Site) IsArticleURL(href string) bool {
	return strings.HasPrefix(href, s.ArticleBase+"/")
}

// Title returns the title portion of an article URL (the path after
// the article prefix, fragment stripped). ok is false for URLs outside
// the article namespace.
func (s *Site) Title(href string) (title string, ok bool) {
	if !s.IsArticleURL(href) {
		return "", false
	}
	title = href[len(s.ArticleBase)+1:]
	if i := strings.IndexByte(title, '#'); i >= 0 {
		title = title[:i]
	}
	return title, true
}

// InExcludedNamespace reports whether href points into one of the
// non-article namespaces. Only a "Name:Rest" qualified prefix counts;
// a bare colon-free title, or a colon after a subpage slash, does not.
func (s *Site) InExcludedNamespace(href string) bool {
	title, ok := s.Title(href)
	if !ok {
		return false
	}
	colon := strings.IndexByte(title, ':')
	if colon <= 0 {
		return false
	}
	if slash := strings.IndexByte(title, '/'); slash >= 0 && slash < colon {
		return false
	}
	_, excluded := nonArticleNamespaces[title[:colon]]
	return excluded
}
