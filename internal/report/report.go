// Package report maintains the per-destination download report file.
//
// The report is an append-only text file in the destination root with one
// line per failed or skipped download: a timestamp, a status indicator, and
// the attempted URL or target path. It survives across runs so interrupted
// batches leave an auditable trail.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName is the report file created in the destination directory.
const FileName = "DOWNLOAD_ERRORS.txt"

const timeFormat = "2006-01-02 15:04:05"

// Log appends download outcome records to the report file. A nil *Log
// discards records, which keeps dry runs and tests quiet.
type Log struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Open creates or appends to the report file in dir.
func Open(dir string) (*Log, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory %q: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open report %q: %w", path, err)
	}
	return &Log{file: file, path: path}, nil
}

// Path returns the report file location.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Failure records a download that the remote side refused or the transport
// dropped.
func (l *Log) Failure(status, url string) {
	l.record("FAILED "+status, url)
}

// Skipped records a download bypassed because the target file already
// exists.
func (l *Log) Skipped(path string) {
	l.record("SKIPPED", path)
}

func (l *Log) record(status, target string) {
	if l == nil || l.file == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.file, "%s | %s | %s\n", time.Now().Format(timeFormat), status, target)
}

// Close flushes and closes the report file.
func (l *Log) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
