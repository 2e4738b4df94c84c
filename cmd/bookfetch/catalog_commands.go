package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCatalogCommand(ctx *commandContext) *cobra.Command {
	var overrideURL string
	var all bool

	cmd := &cobra.Command{
		Use:   "refresh-catalog",
		Short: "Re-download the catalog spreadsheet and rebuild the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if all {
				if overrideURL != "" {
					return fmt.Errorf("--url cannot be combined with --all")
				}
				catalogs, err := ctx.openAllCatalogs()
				if err != nil {
					return err
				}
				for _, cat := range catalogs {
					if err := cat.Fetch(cmd.Context(), ""); err != nil {
						return err
					}
					fmt.Fprintf(out, "Refreshed catalog %s\n", cat)
				}
				return nil
			}

			cat, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			if err := cat.Fetch(cmd.Context(), overrideURL); err != nil {
				return err
			}
			fmt.Fprintf(out, "Refreshed catalog %s\n", cat)
			return nil
		},
	}

	cmd.Flags().StringVarP(&overrideURL, "url", "u", "", "Fetch the spreadsheet from this URL instead of the registered source")
	cmd.Flags().BoolVar(&all, "all", false, "Refresh every known catalog")
	return cmd
}

func newCleanCatalogCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clean-catalog",
		Short: "Remove the cached catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if all {
				catalogs, err := ctx.openAllCatalogs()
				if err != nil {
					return err
				}
				for _, cat := range catalogs {
					if !cat.Cached() {
						continue
					}
					if err := cat.RemoveCache(); err != nil {
						return err
					}
					fmt.Fprintf(out, "Removed cache for catalog %s\n", cat)
				}
				return nil
			}

			cat, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			if !cat.Cached() {
				fmt.Fprintf(out, "Catalog %s has no cache\n", cat)
				return nil
			}
			if err := cat.RemoveCache(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed cache for catalog %s\n", cat)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove every cached catalog")
	return cmd
}
