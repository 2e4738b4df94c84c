package download

// Reporter receives batch progress updates. Implementations must not block;
// the downloader calls them inline between transfers.
type Reporter interface {
	// Start announces a new batch with its entry count and display label.
	Start(total int, label string)
	// Advance reports completion of one entry, successful or not.
	Advance(itemLabel string)
	// Done marks the end of the batch.
	Done()
}

// NopReporter discards all progress updates.
type NopReporter struct{}

func (NopReporter) Start(int, string) {}
func (NopReporter) Advance(string)    {}
func (NopReporter) Done()             {}
