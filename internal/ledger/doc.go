// Package ledger persists download history in SQLite.
//
// Every batch becomes a run; every attempted entry becomes an item with its
// final status (ok, skipped, failed) and byte count. The history command
// reads this store to show what previous invocations actually did, which is
// useful when resuming large interrupted batches.
package ledger
