// Package download drives the bulk retrieval loop over catalog entries.
//
// Entries are processed sequentially in the table's canonical order. Files
// already present in the destination are skipped unless overwriting is
// requested, which makes interrupted batches resumable: a re-run only
// fetches what is missing. Per-item failures are recorded and the batch
// continues; only caller cancellation aborts it, after the partially
// written file has been removed.
package download
