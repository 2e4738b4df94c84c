// Command bookfetch downloads books in bulk from publisher spreadsheet
// catalogs. It caches each catalog locally as CSV, lists titles and
// packages, and retrieves the referenced files over HTTP with
// skip-if-exists semantics so interrupted batches can be resumed.
package main
