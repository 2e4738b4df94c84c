package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"bookfetch/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.CacheDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	return &cfg
}

func buildWorkbook(t *testing.T, headers []string, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	all := append([][]string{headers}, rows...)
	for r, row := range all {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatal(err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func workbookServer(t *testing.T, hits *int, payload []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewUnregisteredIdentity(t *testing.T) {
	_, err := New(testConfig(t), Identity{LanguageEnglish, TopicEmergencyNursing})
	if !errors.Is(err, ErrUnknownCatalog) {
		t.Fatalf("err = %v, want ErrUnknownCatalog", err)
	}
}

func TestCatalogEqualAndString(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg, Identity{LanguageEnglish, TopicAllDisciplines})
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(cfg, Identity{LanguageEnglish, TopicAllDisciplines})
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(cfg, Identity{LanguageGerman, TopicAllDisciplines})
	if err != nil {
		t.Fatal(err)
	}

	if !a.Equal(b) {
		t.Error("catalogs with same identity not equal")
	}
	if a.Equal(c) {
		t.Error("catalogs with different identities equal")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) = true")
	}
	if a.String() != "en-all" {
		t.Errorf("String = %q", a)
	}
}

func TestFetchAndTable(t *testing.T) {
	payload := buildWorkbook(t, testHeaders(), [][]string{
		{"Zoology", "Adams", "1st", "1", "2", "http://doi.org/10.1007/z-1", "Life Sciences", "", "Springer"},
		{"Algebra", "Artin", "2nd", "3", "4", "http://doi.org/10.1007/a-1", "Mathematics", "", "Springer"},
	})
	hits := 0
	server := workbookServer(t, &hits, payload)

	cat, err := New(testConfig(t), Identity{LanguageEnglish, TopicAllDisciplines})
	if err != nil {
		t.Fatal(err)
	}
	if err := cat.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !cat.Cached() {
		t.Fatal("cache file missing after Fetch")
	}

	table, err := cat.Table(context.Background())
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("table has %d entries, want 2", table.Len())
	}
	if table.Entries()[0].Title != "Algebra" {
		t.Errorf("first entry %q, want Algebra", table.Entries()[0].Title)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}

	// Cached catalog must not refetch.
	if err := cat.EnsureCached(context.Background()); err != nil {
		t.Fatalf("EnsureCached: %v", err)
	}
	if hits != 1 {
		t.Errorf("EnsureCached refetched: %d hits", hits)
	}
}

func TestFetchInvalidatesTable(t *testing.T) {
	first := buildWorkbook(t, testHeaders(), [][]string{
		{"Old Title", "A", "1st", "1", "2", "http://doi.org/10.1007/o-1", "Pkg", "", ""},
	})
	second := buildWorkbook(t, testHeaders(), [][]string{
		{"New Title", "B", "1st", "3", "4", "http://doi.org/10.1007/n-1", "Pkg", "", ""},
	})

	payload := first
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	cat, err := New(testConfig(t), Identity{LanguageEnglish, TopicAllDisciplines})
	if err != nil {
		t.Fatal(err)
	}
	if err := cat.Fetch(context.Background(), server.URL); err != nil {
		t.Fatal(err)
	}
	table, err := cat.Table(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if table.Entries()[0].Title != "Old Title" {
		t.Fatalf("unexpected first snapshot: %q", table.Entries()[0].Title)
	}

	payload = second
	if err := cat.Fetch(context.Background(), server.URL); err != nil {
		t.Fatal(err)
	}
	table, err = cat.Table(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if table.Entries()[0].Title != "New Title" {
		t.Errorf("table not invalidated: %q", table.Entries()[0].Title)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer server.Close()

	cat, err := New(testConfig(t), Identity{LanguageEnglish, TopicAllDisciplines})
	if err != nil {
		t.Fatal(err)
	}
	if err := cat.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch accepted non-2xx response")
	}
	if cat.Cached() {
		t.Error("failed fetch left a cache file behind")
	}
}

func TestCacheRoundTripIdempotent(t *testing.T) {
	entries, err := Ingest(testHeaders(), [][]string{
		{"Analysis", "Rudin", "3rd", "1", "2", "http://doi.org/10.1007/r-1", "Mathematics", "", "Springer"},
		{"Botany", "Gray", "1st", "3", "4", "http://doi.org/10.1007/g-1", "Life Sciences", "", "Springer"},
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := marshalCache(NewTable(entries).Entries())
	if err != nil {
		t.Fatal(err)
	}

	path := t.TempDir() + "/catalog-en-all.csv"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := readCacheFile(path)
	if err != nil {
		t.Fatalf("readCacheFile: %v", err)
	}
	second, err := readCacheFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("re-reading the same cache produced different entries")
	}
	if !reflect.DeepEqual(NewTable(first).Entries(), NewTable(entries).Entries()) {
		t.Error("cache round trip changed entries")
	}
}

func TestRemoveCache(t *testing.T) {
	payload := buildWorkbook(t, testHeaders(), [][]string{
		{"Chemistry", "C", "1st", "1", "2", "http://doi.org/10.1007/c-1", "Chemistry", "", ""},
	})
	server := workbookServer(t, nil, payload)

	cat, err := New(testConfig(t), Identity{LanguageEnglish, TopicAllDisciplines})
	if err != nil {
		t.Fatal(err)
	}
	if err := cat.Fetch(context.Background(), server.URL); err != nil {
		t.Fatal(err)
	}
	if err := cat.RemoveCache(); err != nil {
		t.Fatalf("RemoveCache: %v", err)
	}
	if cat.Cached() {
		t.Error("cache file still present")
	}
	// Removing an already-missing cache is fine.
	if err := cat.RemoveCache(); err != nil {
		t.Errorf("second RemoveCache: %v", err)
	}
}

func TestAllCatalogs(t *testing.T) {
	catalogs, err := All(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(catalogs) != 3 {
		t.Fatalf("got %d catalogs, want 3", len(catalogs))
	}
	if catalogs[0].String() != "de-all" || catalogs[2].String() != "en-all" {
		t.Errorf("unexpected order: %v, %v, %v", catalogs[0], catalogs[1], catalogs[2])
	}
}
