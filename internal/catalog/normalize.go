package catalog

import (
	"fmt"
	"strings"
)

// Canonical column names after header normalization.
const (
	colTitle          = "book_title"
	colAuthor         = "author"
	colEdition        = "edition"
	colPrintISBN      = "print_isbn"
	colElectronicISBN = "electronic_isbn"
	colDOIURL         = "doi_url"
	colPackageName    = "package_name"

	// The package column is locale specific: only one of these is
	// populated per catalog. Ingestion folds whichever is present into
	// colPackageName.
	colEnglishPackage = "english_package_name"
	colGermanPackage  = "german_package_name"
)

// NormalizeHeader converts a raw spreadsheet column name into an
// identifier-safe form: lowercased, with whitespace runs collapsed to single
// underscores.
func NormalizeHeader(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "_")
}

// Ingest converts a raw header row plus data rows into normalized entries.
// A leading unnamed index column is dropped. Rows whose source reference
// cannot produce a content id fail with ErrMalformedReference wrapped with
// row context; a schema change upstream should be loud, not silent.
func Ingest(headers []string, rows [][]string) ([]Entry, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	drop := -1
	if len(normalized) > 0 && (normalized[0] == "" || normalized[0] == "index") {
		drop = 0
	}

	entries := make([]Entry, 0, len(rows))
	for n, row := range rows {
		record := make(map[string]string, len(normalized))
		for i, name := range normalized {
			if i == drop || name == "" {
				continue
			}
			var value string
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			record[name] = value
		}
		if empty(record) {
			continue
		}

		entry, err := entryFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func entryFromRecord(record map[string]string) (Entry, error) {
	entry := Entry{
		Title:          take(record, colTitle),
		Author:         take(record, colAuthor),
		Edition:        take(record, colEdition),
		PrintISBN:      take(record, colPrintISBN),
		ElectronicISBN: take(record, colElectronicISBN),
		DOIURL:         take(record, colDOIURL),
	}

	entry.PackageName = take(record, colPackageName)
	english := take(record, colEnglishPackage)
	german := take(record, colGermanPackage)
	if entry.PackageName == "" {
		if english != "" {
			entry.PackageName = english
		} else {
			entry.PackageName = german
		}
	}

	id, err := ContentID(entry.DOIURL)
	if err != nil {
		return Entry{}, fmt.Errorf("%q: %w", entry.Title, err)
	}
	entry.ContentID = id
	entry.FilenameStem = FilenameStem(entry.Title, id)

	if len(record) > 0 {
		entry.Extra = record
	}
	return entry, nil
}

// take removes key from the record and returns its value, leaving only
// pass-through columns behind for Extra.
func take(record map[string]string, key string) string {
	value := record[key]
	delete(record, key)
	return value
}

func empty(record map[string]string) bool {
	for _, v := range record {
		if v != "" {
			return false
		}
	}
	return true
}
