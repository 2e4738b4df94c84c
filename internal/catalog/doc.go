// Package catalog models the publisher's free-textbook catalogs.
//
// A catalog is identified by a (language, topic) pair and is backed by a
// remote spreadsheet. On first access the spreadsheet is downloaded,
// normalized, and cached locally as CSV; the in-memory Table is materialized
// from that cache and stays immutable until an explicit refresh.
//
// Row normalization derives two stable values per entry: a two-segment
// content id taken from the trailing components of the row's DOI URL, and a
// filesystem-safe filename stem built from the title and that id. Both are
// deterministic, so repeated runs map the same row to the same local file.
package catalog
