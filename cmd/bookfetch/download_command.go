package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bookfetch/internal/catalog"
	"bookfetch/internal/download"
	"bookfetch/internal/ledger"
	"bookfetch/internal/report"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var match string
	var packageName string
	var formatFlag string
	var destPath string
	var overwrite bool
	var all bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download books from the selected catalog",
		Long: `Download books from the selected catalog.

By default every book in the catalog is fetched. Use --match to restrict
the batch to titles containing a string, or --package-name to restrict it
to packages matching a name. Files already present in the destination are
skipped, so an interrupted batch can simply be re-run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if countTrue(match != "", packageName != "", all) > 1 {
				return fmt.Errorf("--match, --package-name, and --all are mutually exclusive")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			formatValue := strings.TrimSpace(formatFlag)
			if formatValue == "" {
				formatValue = cfg.Download.Format
			}
			format, err := catalog.ParseFormat(formatValue)
			if err != nil {
				return err
			}

			dest, err := ctx.destDir(destPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("create destination %q: %w", dest, err)
			}

			var rep *report.Log
			if !dryRun {
				rep, err = report.Open(dest)
				if err != nil {
					return err
				}
				defer rep.Close()
			}

			store, err := ledger.Open(cfg)
			if err != nil {
				logger.Warn("download history disabled", slog.String("error", err.Error()))
				store = nil
			}
			defer store.Close()

			d := download.New(download.Options{
				Logger:   logger,
				Report:   rep,
				Ledger:   store,
				Progress: newProgressReporter(cmd.OutOrStdout()),
			})

			req := download.Request{
				Dest:      dest,
				Format:    format,
				Overwrite: overwrite || cfg.Download.Overwrite,
				DryRun:    dryRun,
			}

			var total int64
			switch {
			case all:
				catalogs, err := ctx.openAllCatalogs()
				if err != nil {
					return err
				}
				total, err = d.DownloadAll(cmd.Context(), catalogs, req)
				if err != nil {
					return err
				}
			default:
				cat, err := ctx.openCatalog()
				if err != nil {
					return err
				}
				switch {
				case match != "":
					total, err = d.DownloadByTitle(cmd.Context(), cat, match, req)
				case packageName != "":
					total, err = d.DownloadByPackage(cmd.Context(), cat, packageName, req)
				default:
					total, err = d.DownloadCatalog(cmd.Context(), cat, req)
				}
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Dry run complete; nothing written to %s\n", dest)
				return nil
			}
			fmt.Fprintf(out, "Downloaded %s to %s\n", humanBytes(total), dest)
			fmt.Fprintf(out, "Skips and failures are recorded in %s\n", rep.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "Only download titles containing this text")
	cmd.Flags().StringVarP(&packageName, "package-name", "p", "", "Only download books in packages matching this name")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "File format to download (pdf or epub)")
	cmd.Flags().StringVarP(&destPath, "dest-path", "d", "", "Destination directory for downloaded files")
	cmd.Flags().BoolVarP(&overwrite, "over-write", "w", false, "Replace files that already exist")
	cmd.Flags().BoolVar(&all, "all", false, "Download every known catalog into per-catalog subdirectories")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve the batch without transferring anything")

	return cmd
}

func countTrue(values ...bool) int {
	count := 0
	for _, v := range values {
		if v {
			count++
		}
	}
	return count
}
