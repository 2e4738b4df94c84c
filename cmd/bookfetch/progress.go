package main

import (
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"

	"bookfetch/internal/download"
)

// newProgressReporter returns a live progress bar when out is a terminal
// and a silent reporter otherwise, so piped output stays clean.
func newProgressReporter(out io.Writer) download.Reporter {
	file, ok := out.(*os.File)
	if !ok {
		return download.NopReporter{}
	}
	fd := file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return download.NopReporter{}
	}
	return &progressReporter{out: file}
}

type progressReporter struct {
	out     *os.File
	writer  progress.Writer
	tracker *progress.Tracker
}

func (p *progressReporter) Start(total int, label string) {
	pw := progress.NewWriter()
	pw.SetOutputWriter(p.out)
	pw.SetAutoStop(false)
	pw.SetTrackerLength(30)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(100 * time.Millisecond)

	tracker := &progress.Tracker{
		Message: label,
		Total:   int64(total),
		Units:   progress.UnitsDefault,
	}
	pw.AppendTracker(tracker)
	go pw.Render()

	p.writer = pw
	p.tracker = tracker
}

func (p *progressReporter) Advance(itemLabel string) {
	if p.tracker == nil {
		return
	}
	p.tracker.UpdateMessage(itemLabel)
	p.tracker.Increment(1)
}

func (p *progressReporter) Done() {
	if p.writer == nil {
		return
	}
	p.tracker.MarkAsDone()
	p.writer.Stop()
	for p.writer.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}
	p.writer = nil
	p.tracker = nil
}
