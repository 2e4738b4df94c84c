package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
)

// cacheColumns is the fixed leading column order of the cache CSV. Extra
// pass-through columns follow in sorted order.
var cacheColumns = []string{
	colTitle,
	colAuthor,
	colEdition,
	colPrintISBN,
	colElectronicISBN,
	colDOIURL,
	colPackageName,
}

// marshalCache renders entries as the canonical cache CSV. Writing the
// normalized form means the cache round-trips byte-for-byte: reading it back
// always reproduces the same ordered entry sequence.
func marshalCache(entries []Entry) ([]byte, error) {
	extraSet := make(map[string]struct{})
	for _, entry := range entries {
		for key := range entry.Extra {
			extraSet[key] = struct{}{}
		}
	}
	extras := make([]string, 0, len(extraSet))
	for key := range extraSet {
		extras = append(extras, key)
	}
	sort.Strings(extras)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append(append([]string{}, cacheColumns...), extras...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write cache header: %w", err)
	}

	for _, entry := range entries {
		row := []string{
			entry.Title,
			entry.Author,
			entry.Edition,
			entry.PrintISBN,
			entry.ElectronicISBN,
			entry.DOIURL,
			entry.PackageName,
		}
		for _, key := range extras {
			row = append(row, entry.Extra[key])
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write cache row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush cache: %w", err)
	}
	return buf.Bytes(), nil
}

// readCacheFile loads entries from a cache CSV. A redundant leading index
// column, as some spreadsheet exports produce, is tolerated and dropped
// during ingestion.
func readCacheFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse cache %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	entries, err := Ingest(records[0], records[1:])
	if err != nil {
		return nil, fmt.Errorf("cache %q: %w", path, err)
	}
	return entries, nil
}
