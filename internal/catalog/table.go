package catalog

import (
	"sort"
	"strings"
)

// Table is the immutable, normalized collection of a catalog's entries.
type Table struct {
	entries []Entry
}

// NewTable builds a table from entries, sorting them into canonical order:
// by title ascending, ties broken by author.
func NewTable(entries []Entry) *Table {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Title != sorted[j].Title {
			return sorted[i].Title < sorted[j].Title
		}
		return sorted[i].Author < sorted[j].Author
	})
	return &Table{entries: sorted}
}

// Entries returns the entries in canonical order. The returned slice is
// shared; callers must not modify it.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Packages partitions the entries by package name, preserving canonical
// order inside each package. Every entry lands in exactly one package.
func (t *Table) Packages() map[string][]Entry {
	packages := make(map[string][]Entry)
	for _, entry := range t.entries {
		packages[entry.PackageName] = append(packages[entry.PackageName], entry)
	}
	return packages
}

// PackageNames returns the sorted package names.
func (t *Table) PackageNames() []string {
	packages := t.Packages()
	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterByTitle returns the entries whose title contains match,
// case-insensitively. An empty result is a valid table.
func (t *Table) FilterByTitle(match string) *Table {
	return t.filter(match, func(e Entry) string { return e.Title })
}

// FilterByPackage returns the entries whose package name contains match,
// case-insensitively.
func (t *Table) FilterByPackage(match string) *Table {
	return t.filter(match, func(e Entry) string { return e.PackageName })
}

func (t *Table) filter(match string, field func(Entry) string) *Table {
	needle := strings.ToLower(strings.TrimSpace(match))
	filtered := make([]Entry, 0, len(t.entries))
	for _, entry := range t.entries {
		if strings.Contains(strings.ToLower(field(entry)), needle) {
			filtered = append(filtered, entry)
		}
	}
	return &Table{entries: filtered}
}
