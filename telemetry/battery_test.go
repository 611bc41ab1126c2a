package telemetry

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestOpen_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.csv")

	b, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, path)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want just the header", len(rows))
	}
	if rows[0][0] != "Timestamp" || rows[0][4] != "Page" {
		t.Errorf("unexpected header: %v", rows[0])
	}
}

func TestObserve_AppendsOneRowPerPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.csv")

	b, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer b.Close()

	pages := []string{
		"https://en.wikipedia.org/wiki/Stoicism",
		"https://en.wikipedia.org/wiki/Ethics",
	}
	for _, p := range pages {
		if err := b.Observe(context.Background(), p); err != nil {
			t.Fatalf("observe %s: %v", p, err)
		}
	}

	rows := readRows(t, path)
	if len(rows) != 1+len(pages) {
		t.Fatalf("got %d rows, want header plus %d records", len(rows), len(pages))
	}
	for i, p := range pages {
		row := rows[1+i]
		if len(row) != len(header) {
			t.Fatalf("row %d has %d fields, want %d: %v", i, len(row), len(header), row)
		}
		if row[4] != p {
			t.Errorf("row %d page = %q, want %q", i, row[4], p)
		}
		if row[0] == "" {
			t.Errorf("row %d has an empty timestamp", i)
		}
	}
}

func TestOpen_ReopenAppendsWithoutSecondHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.csv")

	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Observe(context.Background(), "https://en.wikipedia.org/wiki/Stoicism"); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	// Simulates an interrupted run resuming into the same log.
	b, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Observe(context.Background(), "https://en.wikipedia.org/wiki/Ethics"); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus two records", len(rows))
	}
	for i, row := range rows[1:] {
		if row[0] == "Timestamp" {
			t.Errorf("record %d is a duplicate header", i)
		}
	}
}
