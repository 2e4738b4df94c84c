package report

import (
	"os"
	"strings"
	"testing"
)

func TestLogRecords(t *testing.T) {
	dir := t.TempDir()
	log, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Failure("404 Not Found", "https://example.com/missing.pdf")
	log.Skipped("/books/present.pdf")
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(log.Path())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], "FAILED 404 Not Found") || !strings.Contains(lines[0], "missing.pdf") {
		t.Errorf("failure line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "SKIPPED") || !strings.Contains(lines[1], "present.pdf") {
		t.Errorf("skip line = %q", lines[1])
	}
}

func TestLogAppendsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	first.Failure("503 Service Unavailable", "https://example.com/a.pdf")
	_ = first.Close()

	second, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	second.Failure("500 Internal Server Error", "https://example.com/b.pdf")
	_ = second.Close()

	data, err := os.ReadFile(second.Path())
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "FAILED"); got != 2 {
		t.Errorf("got %d failure records, want 2", got)
	}
}

func TestNilLogIsQuiet(t *testing.T) {
	var log *Log
	log.Failure("404", "u")
	log.Skipped("p")
	if log.Path() != "" {
		t.Error("nil log has a path")
	}
	if err := log.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
