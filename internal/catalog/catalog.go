package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"bookfetch/internal/config"
	"bookfetch/internal/fileutil"
	"bookfetch/internal/logging"
)

const defaultFetchTimeout = 300 * time.Second

// Catalog binds a catalog identity to its remote source and local cache.
// The entry table is materialized lazily from the cache and is immutable
// until Fetch invalidates it.
type Catalog struct {
	identity  Identity
	url       string
	cacheFile string
	sources   *Sources
	client    *http.Client
	logger    *slog.Logger

	table *Table
}

// Option customizes catalog construction.
type Option func(*Catalog)

// WithHTTPClient overrides the HTTP client used for catalog fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Catalog) {
		if client != nil {
			c.client = client
		}
	}
}

// WithSources overrides the source registry.
func WithSources(sources *Sources) Option {
	return func(c *Catalog) {
		if sources != nil {
			c.sources = sources
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a catalog for the given identity. The identity must be
// registered in the source table; unregistered pairs fail with
// ErrUnknownCatalog before any network access.
func New(cfg *config.Config, id Identity, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		identity: id,
		sources:  DefaultSources(),
		client:   &http.Client{Timeout: defaultFetchTimeout},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if cfg != nil && cfg.Download.TimeoutSeconds > 0 && c.client.Timeout == defaultFetchTimeout {
		c.client.Timeout = time.Duration(cfg.Download.TimeoutSeconds) * time.Second
	}

	url, err := c.sources.CatalogURL(id)
	if err != nil {
		return nil, err
	}
	c.url = url

	cacheDir := ""
	if cfg != nil {
		cacheDir = cfg.Paths.CacheDir
	}
	c.cacheFile = filepath.Join(cacheDir, fmt.Sprintf("catalog-%s-%s.csv", id.Language, id.Topic))

	c.logger = logging.NewComponentLogger(c.logger, "catalog").With(
		slog.String(logging.FieldCatalog, id.String()))
	return c, nil
}

// All constructs a catalog for every registered identity.
func All(cfg *config.Config, opts ...Option) ([]*Catalog, error) {
	sources := DefaultSources()
	for _, opt := range opts {
		probe := &Catalog{sources: sources}
		opt(probe)
		sources = probe.sources
	}

	var catalogs []*Catalog
	for _, id := range sources.Identities() {
		c, err := New(cfg, id, opts...)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, c)
	}
	return catalogs, nil
}

// Identity returns the catalog's (language, topic) identity.
func (c *Catalog) Identity() Identity { return c.identity }

// Language returns the catalog language.
func (c *Catalog) Language() Language { return c.identity.Language }

// Topic returns the catalog topic.
func (c *Catalog) Topic() Topic { return c.identity.Topic }

// URL returns the resolved spreadsheet source URL.
func (c *Catalog) URL() string { return c.url }

// CacheFile returns the local cache CSV path.
func (c *Catalog) CacheFile() string { return c.cacheFile }

func (c *Catalog) String() string {
	return c.identity.String()
}

// Equal reports identity equality. Cache staleness does not matter.
func (c *Catalog) Equal(other *Catalog) bool {
	return other != nil && c.identity == other.identity
}

// ContentURL composes the download URL for a content id in the given format.
func (c *Catalog) ContentURL(contentID string, format Format) string {
	return c.sources.ContentURL(contentID, format)
}

// Cached reports whether the local cache file exists.
func (c *Catalog) Cached() bool {
	return fileutil.FileExists(c.cacheFile)
}

// EnsureCached fetches the catalog only when the cache file is absent.
func (c *Catalog) EnsureCached(ctx context.Context) error {
	if c.Cached() {
		return nil
	}
	return c.Fetch(ctx, "")
}

// Fetch downloads the catalog spreadsheet, normalizes it, and atomically
// replaces the cache file. An override URL, when non-empty, is used for this
// fetch only and does not replace the registered source. The in-memory
// table is invalidated so the next access re-reads the cache.
func (c *Catalog) Fetch(ctx context.Context, overrideURL string) error {
	url := strings.TrimSpace(overrideURL)
	if url == "" {
		url = c.url
	}

	lock := flock.New(c.cacheFile + ".lock")
	if err := os.MkdirAll(filepath.Dir(c.cacheFile), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock cache: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	c.logger.Info("fetching catalog", slog.String(logging.FieldURL, url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch catalog %s: unexpected status %s", url, resp.Status)
	}

	rows, err := workbookRows(resp.Body)
	if err != nil {
		return fmt.Errorf("convert catalog %s: %w", url, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("catalog %s: spreadsheet is empty", url)
	}

	entries, err := Ingest(rows[0], rows[1:])
	if err != nil {
		return fmt.Errorf("normalize catalog %s: %w", url, err)
	}

	data, err := marshalCache(NewTable(entries).Entries())
	if err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(c.cacheFile, data, 0o644); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}

	c.table = nil
	c.logger.Info("catalog cached",
		slog.String(logging.FieldPath, c.cacheFile),
		slog.Int("entries", len(entries)))
	return nil
}

// Table returns the materialized entry table, fetching and caching the
// catalog first if needed.
func (c *Catalog) Table(ctx context.Context) (*Table, error) {
	if c.table != nil {
		return c.table, nil
	}
	if err := c.EnsureCached(ctx); err != nil {
		return nil, err
	}
	entries, err := readCacheFile(c.cacheFile)
	if err != nil {
		return nil, err
	}
	c.table = NewTable(entries)
	return c.table, nil
}

// RemoveCache deletes the local cache file and drops the in-memory table.
// A missing cache file is not an error.
func (c *Catalog) RemoveCache() error {
	c.table = nil
	if err := os.Remove(c.cacheFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache: %w", err)
	}
	return nil
}
