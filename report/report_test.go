package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thcipriani/getting-to-philosophy-battery-test/traversal"
	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

func sampleOutcomes() []*traversal.Outcome {
	return []*traversal.Outcome{
		{
			Seed:        "https://en.wikipedia.org/wiki/Stoicism",
			Termination: traversal.ReachedTarget,
			Path: []string{
				"https://en.wikipedia.org/wiki/Stoicism",
				"https://en.wikipedia.org/wiki/Hellenistic_philosophy",
				"https://en.wikipedia.org/wiki/Philosophy",
			},
		},
		{
			Seed:        "https://en.wikipedia.org/wiki/Loopy",
			Termination: traversal.CycleDetected,
			Path: []string{
				"https://en.wikipedia.org/wiki/Loopy",
				"https://en.wikipedia.org/wiki/Loopy",
			},
		},
		{
			Seed:        "https://en.wikipedia.org/wiki/Stub",
			Termination: traversal.DeadEnd,
			Path:        []string{"https://en.wikipedia.org/wiki/Stub"},
			LastRendered: &wiki.ArticleContent{
				URL:      "https://en.wikipedia.org/wiki/Stub",
				RawHTML:  "<html><head><title>Stub</title></head><body><p>A short stub about nothing much.</p></body></html>",
				LeadHTML: "<p>A short stub about nothing much.</p>",
			},
		},
	}
}

func TestLabel(t *testing.T) {
	if got := Label(traversal.ReachedTarget); got != "reached target" {
		t.Errorf("Label(ReachedTarget) = %q", got)
	}
	if got := Label(traversal.Termination("weird")); got != "weird" {
		t.Errorf("unknown terminations should fall back to the raw value, got %q", got)
	}
}

func TestReporter_Pass(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Pass(3, sampleOutcomes())
	out := buf.String()

	wantLines := []string{
		"reached target for https://en.wikipedia.org/wiki/Stoicism (3 pages)",
		"\t- https://en.wikipedia.org/wiki/Hellenistic_philosophy",
		"loop detected for https://en.wikipedia.org/wiki/Loopy (2 pages)",
		"dead end for https://en.wikipedia.org/wiki/Stub (1 pages)",
		"pass 3: 1 reached target, 1 loops, 1 dead ends",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestReporter_PassEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Pass(1, nil)

	if got := buf.String(); !strings.Contains(got, "pass 1: 0 reached target, 0 loops, 0 dead ends") {
		t.Errorf("empty pass should still print a tally, got:\n%s", got)
	}
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	if err := WriteMarkdown(path, 2, sampleOutcomes()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	md := string(data)

	for _, want := range []string{
		"pass 2",
		"| Seed | Outcome | Pages |",
		"| https://en.wikipedia.org/wiki/Stoicism | reached target | 3 |",
		"## https://en.wikipedia.org/wiki/Stub",
		"- https://en.wikipedia.org/wiki/Philosophy",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown is missing %q:\n%s", want, md)
		}
	}
}
