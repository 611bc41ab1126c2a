package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/thcipriani/getting-to-philosophy-battery-test/models"
)

func wrapPage(body string) string {
	return `<html><body><div id="content">
		<div class="mw-content-ltr mw-parser-output">` + body + `</div>
		</div></body></html>`
}

func TestLeadHTML_KeepsParagraphsAndLists(t *testing.T) {
	raw := wrapPage(`
		<p>First paragraph with <a href="/wiki/A_link">a link</a>.</p>
		<ul><li>item one</li></ul>
		<ol><li>step one</li></ol>
		<p>Second paragraph.</p>`)

	lead, err := leadHTML(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"First paragraph", "item one", "step one", "Second paragraph"} {
		if !strings.Contains(lead, want) {
			t.Errorf("lead is missing %q:\n%s", want, lead)
		}
	}
}

func TestLeadHTML_StopsAtFirstHeading(t *testing.T) {
	raw := wrapPage(`
		<p>Lead text.</p>
		<h2>History</h2>
		<p>Section text with <a href="/wiki/Later">a later link</a>.</p>`)

	lead, err := leadHTML(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(lead, "Lead text") {
		t.Errorf("lead paragraph missing:\n%s", lead)
	}
	if strings.Contains(lead, "Section text") {
		t.Errorf("content after the first heading must be cut:\n%s", lead)
	}
}

func TestLeadHTML_StopsAtWrappedHeading(t *testing.T) {
	// Modern skins wrap section headings in <div class="mw-heading">.
	raw := wrapPage(`
		<p>Lead text.</p>
		<div class="mw-heading mw-heading2"><h2>History</h2></div>
		<p>Section text.</p>`)

	lead, err := leadHTML(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(lead, "Section text") {
		t.Errorf("content after a wrapped heading must be cut:\n%s", lead)
	}
}

func TestLeadHTML_SkipsNonBlockFurniture(t *testing.T) {
	raw := wrapPage(`
		<div class="hatnote">For other uses, see <a href="/wiki/Stoic_(disambiguation)">Stoic</a>.</div>
		<table class="infobox"><tbody><tr><td><a href="/wiki/Greece">Greece</a></td></tr></tbody></table>
		<figure><img src="x.jpg"><figcaption><a href="/wiki/Zeno">Zeno</a></figcaption></figure>
		<p>Body text with <a href="/wiki/Real_link">the real link</a>.</p>`)

	lead, err := leadHTML(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, skipped := range []string{"disambiguation", "infobox", "Zeno"} {
		if strings.Contains(lead, skipped) {
			t.Errorf("furniture %q leaked into the lead:\n%s", skipped, lead)
		}
	}
	if !strings.Contains(lead, "Real_link") {
		t.Errorf("body paragraph missing:\n%s", lead)
	}
}

func TestLeadHTML_PlainParserOutputFallback(t *testing.T) {
	raw := `<html><body><div class="mw-parser-output"><p>Old skin.</p></div></body></html>`

	lead, err := leadHTML(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(lead, "Old skin") {
		t.Errorf("fallback selector failed:\n%s", lead)
	}
}

func TestLeadHTML_MissingContentRoot(t *testing.T) {
	_, err := leadHTML(`<html><body><p>not a wiki page</p></body></html>`)
	if err == nil {
		t.Fatal("expected an error for a page without a content root")
	}
	var we *models.WalkError
	if !errors.As(err, &we) || we.Code != models.ErrCodeContent {
		t.Errorf("got %v, want a %s walk error", err, models.ErrCodeContent)
	}
}
