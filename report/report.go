// Package report turns traversal outcomes into the human-facing
// output: the per-seed console path listing and an optional markdown
// summary file.
package report

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/thcipriani/getting-to-philosophy-battery-test/traversal"
	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

var labels = map[traversal.Termination]string{
	traversal.ReachedTarget: "reached target",
	traversal.CycleDetected: "loop detected",
	traversal.DeadEnd:       "dead end",
}

// Label returns the human-readable name of a termination.
func Label(t traversal.Termination) string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

// Reporter writes pass results to a stream, one path listing per seed.
type Reporter struct {
	out io.Writer
}

// New creates a Reporter writing to out (normally os.Stdout).
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Pass prints the outcome and full visited path for every seed in the
// pass, followed by a one-line tally.
func (r *Reporter) Pass(pass int, outcomes []*traversal.Outcome) {
	var tally [3]int
	for _, o := range outcomes {
		fmt.Fprintf(r.out, "%s for %s (%d pages)\n", Label(o.Termination), o.Seed, len(o.Path))
		for _, page := range o.Path {
			fmt.Fprintf(r.out, "\t- %s\n", page)
		}
		switch o.Termination {
		case traversal.ReachedTarget:
			tally[0]++
		case traversal.CycleDetected:
			tally[1]++
		case traversal.DeadEnd:
			tally[2]++
		}
	}
	fmt.Fprintf(r.out, "pass %d: %d reached target, %d loops, %d dead ends\n",
		pass, tally[0], tally[1], tally[2])
}

// WriteMarkdown writes the pass summary as a markdown document:
// an outcome table plus, per seed, the visited path and a short
// description of the page where the walk stopped deciding.
func WriteMarkdown(path string, pass int, outcomes []*traversal.Outcome) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Getting to Philosophy — pass %d\n\n", pass)

	b.WriteString("| Seed | Outcome | Pages |\n|---|---|---|\n")
	for _, o := range outcomes {
		fmt.Fprintf(&b, "| %s | %s | %d |\n", o.Seed, Label(o.Termination), len(o.Path))
	}
	b.WriteString("\n")

	for _, o := range outcomes {
		fmt.Fprintf(&b, "## %s\n\n**%s** after %d pages:\n\n", o.Seed, Label(o.Termination), len(o.Path))
		for _, page := range o.Path {
			fmt.Fprintf(&b, "- %s\n", page)
		}
		b.WriteString("\n")

		if summary := terminalSummary(o.LastRendered); summary != "" {
			b.WriteString(summary)
			b.WriteString("\n")
		}
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// terminalSummary describes the last page the walk actually rendered:
// its readability title and excerpt, plus the first lead paragraph
// converted to markdown. Everything here is best-effort decoration;
// any failure just shrinks the summary.
func terminalSummary(c *wiki.ArticleContent) string {
	if c == nil {
		return ""
	}

	var b strings.Builder

	pageURL, err := url.Parse(c.URL)
	if err == nil {
		if article, raErr := readability.FromReader(strings.NewReader(c.RawHTML), pageURL); raErr == nil {
			if article.Title != "" {
				fmt.Fprintf(&b, "Stopped at **%s**", article.Title)
				if article.Excerpt != "" {
					fmt.Fprintf(&b, " — %s", strings.TrimSpace(article.Excerpt))
				}
				b.WriteString("\n\n")
			}
		}
	}

	if lead := firstLeadParagraph(c.LeadHTML); lead != "" {
		if md, mdErr := htmltomarkdown.ConvertString(lead); mdErr == nil && strings.TrimSpace(md) != "" {
			b.WriteString("> " + strings.ReplaceAll(strings.TrimSpace(md), "\n", "\n> "))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// firstLeadParagraph returns the first non-empty paragraph of the lead
// fragment.
func firstLeadParagraph(leadHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(leadHTML))
	if err != nil {
		return ""
	}
	var out string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) == "" {
			return true
		}
		if h, hErr := goquery.OuterHtml(s); hErr == nil {
			out = h
		}
		return false
	})
	return out
}
