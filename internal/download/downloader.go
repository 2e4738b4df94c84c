package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bookfetch/internal/catalog"
	"bookfetch/internal/fileutil"
	"bookfetch/internal/ledger"
	"bookfetch/internal/logging"
	"bookfetch/internal/report"
)

// ErrNotFound indicates that a user-supplied title or package filter
// matched no catalog entries. Downloading nothing silently would be worse
// than refusing loudly.
var ErrNotFound = errors.New("no catalog entries matched")

const defaultTransferTimeout = 30 * time.Minute

// Options configures a Downloader. Zero-value collaborators are replaced
// with quiet defaults.
type Options struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	Report     *report.Log
	Ledger     *ledger.Store
	Progress   Reporter
}

// Downloader retrieves catalog entries over HTTP, one at a time.
type Downloader struct {
	client   *http.Client
	logger   *slog.Logger
	report   *report.Log
	ledger   *ledger.Store
	progress Reporter
}

// New constructs a Downloader.
func New(opts Options) *Downloader {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTransferTimeout}
	}
	progress := opts.Progress
	if progress == nil {
		progress = NopReporter{}
	}
	return &Downloader{
		client:   client,
		logger:   logging.NewComponentLogger(opts.Logger, "downloader"),
		report:   opts.Report,
		ledger:   opts.Ledger,
		progress: progress,
	}
}

// Request describes one download batch.
type Request struct {
	Dest      string
	Format    catalog.Format
	Overwrite bool
	DryRun    bool
}

// Label returns the batch's progress label.
func (r Request) Label() string {
	label := strings.ToUpper(r.Format.Suffix())
	if r.DryRun {
		label = "DRYRUN-" + label
	}
	return label
}

// DownloadOne retrieves a single entry into req.Dest. It returns the bytes
// written: zero for skips and recorded failures. Only caller cancellation
// returns an error, after any partial file has been removed.
func (d *Downloader) DownloadOne(ctx context.Context, cat *catalog.Catalog, entry catalog.Entry, req Request) (int64, error) {
	return d.downloadOne(ctx, cat, entry, req, "")
}

func (d *Downloader) downloadOne(ctx context.Context, cat *catalog.Catalog, entry catalog.Entry, req Request, runID string) (int64, error) {
	target := filepath.Join(req.Dest, entry.FileName(req.Format))

	if !req.Overwrite && fileutil.FileExists(target) {
		d.logger.Debug("skipping existing file", slog.String(logging.FieldPath, target))
		d.report.Skipped(target)
		d.recordItem(ctx, runID, entry, "", target, ledger.StatusSkipped, 0)
		return 0, nil
	}

	if req.DryRun {
		return 0, nil
	}

	url := cat.ContentURL(entry.ContentID, req.Format)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := d.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		d.logger.Warn("transfer failed",
			slog.String(logging.FieldURL, url),
			slog.String("error", err.Error()))
		d.report.Failure("transport error", url)
		d.recordItem(ctx, runID, entry, url, target, ledger.StatusFailed, 0)
		return 0, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.logger.Warn("remote refused download",
			slog.String(logging.FieldURL, url),
			slog.String("status", resp.Status))
		d.report.Failure(resp.Status, url)
		d.recordItem(ctx, runID, entry, url, target, ledger.StatusFailed, 0)
		return 0, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, fmt.Errorf("create directory for %q: %w", target, err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		d.logger.Warn("cannot write target",
			slog.String(logging.FieldPath, target),
			slog.String("error", err.Error()))
		d.report.Failure("write error", target)
		d.recordItem(ctx, runID, entry, url, target, ledger.StatusFailed, 0)
		return 0, nil
	}

	written, copyErr := copyWithContext(ctx, out, resp.Body)
	closeErr := out.Close()

	if copyErr != nil {
		_ = os.Remove(target)
		if ctx.Err() != nil {
			// User-initiated interrupt: no truncated file left behind,
			// cancellation propagates to abort the batch.
			return 0, ctx.Err()
		}
		d.logger.Warn("transfer aborted",
			slog.String(logging.FieldURL, url),
			slog.String("error", copyErr.Error()))
		d.report.Failure("transport error", url)
		d.recordItem(ctx, runID, entry, url, target, ledger.StatusFailed, 0)
		return 0, nil
	}
	if closeErr != nil {
		_ = os.Remove(target)
		d.report.Failure("write error", target)
		d.recordItem(ctx, runID, entry, url, target, ledger.StatusFailed, 0)
		return 0, nil
	}

	d.logger.Debug("downloaded",
		slog.String(logging.FieldPath, target),
		slog.Int64("bytes", written))
	d.recordItem(ctx, runID, entry, url, target, ledger.StatusOK, written)
	return written, nil
}

// DownloadMany retrieves entries sequentially in the order given and
// returns the total bytes written. Skips and per-item failures contribute
// zero bytes and do not stop the batch.
func (d *Downloader) DownloadMany(ctx context.Context, cat *catalog.Catalog, entries []catalog.Entry, req Request) (int64, error) {
	if err := os.MkdirAll(req.Dest, 0o755); err != nil {
		return 0, fmt.Errorf("create destination %q: %w", req.Dest, err)
	}

	runID := d.startRun(ctx, cat, req)

	d.progress.Start(len(entries), req.Label())
	defer d.progress.Done()

	var total int64
	for _, entry := range entries {
		written, err := d.downloadOne(ctx, cat, entry, req, runID)
		total += written
		if err != nil {
			d.finishRun(runID, total)
			return total, err
		}
		d.progress.Advance(entry.Title)
	}

	d.finishRun(runID, total)
	d.logger.Info("batch complete",
		slog.String(logging.FieldCatalog, cat.String()),
		slog.Int("entries", len(entries)),
		slog.Int64("bytes", total))
	return total, nil
}

// DownloadCatalog retrieves every entry of the catalog.
func (d *Downloader) DownloadCatalog(ctx context.Context, cat *catalog.Catalog, req Request) (int64, error) {
	table, err := cat.Table(ctx)
	if err != nil {
		return 0, err
	}
	return d.DownloadMany(ctx, cat, table.Entries(), req)
}

// DownloadByTitle retrieves the entries whose titles contain match,
// case-insensitively. A match with no entries fails with ErrNotFound before
// any network access.
func (d *Downloader) DownloadByTitle(ctx context.Context, cat *catalog.Catalog, match string, req Request) (int64, error) {
	table, err := cat.Table(ctx)
	if err != nil {
		return 0, err
	}
	filtered := table.FilterByTitle(match)
	if filtered.Len() == 0 {
		return 0, fmt.Errorf("%w: no titles match %q", ErrNotFound, match)
	}
	return d.DownloadMany(ctx, cat, filtered.Entries(), req)
}

// DownloadByPackage retrieves the entries whose package names contain
// match, case-insensitively.
func (d *Downloader) DownloadByPackage(ctx context.Context, cat *catalog.Catalog, match string, req Request) (int64, error) {
	table, err := cat.Table(ctx)
	if err != nil {
		return 0, err
	}
	filtered := table.FilterByPackage(match)
	if filtered.Len() == 0 {
		return 0, fmt.Errorf("%w: no packages match %q", ErrNotFound, match)
	}
	return d.DownloadMany(ctx, cat, filtered.Entries(), req)
}

// DownloadAll runs the batch for every supplied catalog, placing each
// catalog's files under dest/<language>/<topic>.
func (d *Downloader) DownloadAll(ctx context.Context, catalogs []*catalog.Catalog, req Request) (int64, error) {
	var total int64
	for _, cat := range catalogs {
		sub := req
		sub.Dest = filepath.Join(req.Dest, string(cat.Language()), string(cat.Topic()))
		written, err := d.DownloadCatalog(ctx, cat, sub)
		total += written
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (d *Downloader) startRun(ctx context.Context, cat *catalog.Catalog, req Request) string {
	if req.DryRun {
		return ""
	}
	runID, err := d.ledger.StartRun(ctx, cat.String(), req.Format.Suffix())
	if err != nil {
		d.logger.Warn("history unavailable", slog.String("error", err.Error()))
		return ""
	}
	return runID
}

func (d *Downloader) finishRun(runID string, total int64) {
	// The run record is finalized even when the batch was cancelled.
	if err := d.ledger.FinishRun(context.Background(), runID, total); err != nil {
		d.logger.Warn("history unavailable", slog.String("error", err.Error()))
	}
}

func (d *Downloader) recordItem(ctx context.Context, runID string, entry catalog.Entry, url, path, status string, bytes int64) {
	if runID == "" {
		return
	}
	if err := d.ledger.RecordItem(context.WithoutCancel(ctx), runID, entry.Title, url, path, status, bytes); err != nil {
		d.logger.Warn("history unavailable", slog.String("error", err.Error()))
	}
}

// copyWithContext streams src to dst, checking for caller cancellation
// between chunks so an interrupt aborts promptly.
func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			wn, writeErr := dst.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, writeErr
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			return written, readErr
		}
	}
}
