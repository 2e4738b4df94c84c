package catalog

import (
	"fmt"
	"strings"

	"bookfetch/internal/textutil"
)

// Entry is one downloadable item from a catalog. Derived fields (ContentID,
// FilenameStem) are computed once at ingestion and never change for the
// lifetime of the entry.
type Entry struct {
	Title          string
	Author         string
	Edition        string
	PrintISBN      string
	ElectronicISBN string
	DOIURL         string
	PackageName    string

	// Extra carries descriptive columns that are passed through untouched
	// (publisher, subject classification, and similar).
	Extra map[string]string

	ContentID    string
	FilenameStem string
}

// FileName returns the local filename for the entry in the given format.
func (e Entry) FileName(format Format) string {
	return e.FilenameStem + "." + format.Suffix()
}

// ContentID extracts the two-segment content identifier from a source
// reference, taking the last two slash-delimited components. References with
// fewer than two usable segments return ErrMalformedReference.
func ContentID(reference string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(reference), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %q", ErrMalformedReference, reference)
	}
	parent, last := parts[len(parts)-2], parts[len(parts)-1]
	if parent == "" || last == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedReference, reference)
	}
	return parent + "/" + last, nil
}

// FilenameStem builds the filesystem-safe stem for a (title, content id)
// pair. The result is stable: the same inputs always yield the same stem.
func FilenameStem(title, contentID string) string {
	return textutil.SanitizeFileName(title) + "-" + textutil.IDToken(contentID)
}
