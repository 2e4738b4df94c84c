package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"bookfetch/internal/catalog"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Inspect catalog contents",
	}

	listCmd.AddCommand(newListBooksCommand(ctx))
	listCmd.AddCommand(newListPackagesCommand(ctx))
	listCmd.AddCommand(newListPackageCommand(ctx))
	listCmd.AddCommand(newListCatalogCommand(ctx))
	listCmd.AddCommand(newListCatalogsCommand(ctx))

	return listCmd
}

func newListBooksCommand(ctx *commandContext) *cobra.Command {
	var match string
	var longFormat bool

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List the books in the selected catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			table, err := cat.Table(cmd.Context())
			if err != nil {
				return err
			}
			if match != "" {
				table = table.FilterByTitle(match)
			}

			out := cmd.OutOrStdout()
			if table.Len() == 0 {
				if match != "" {
					fmt.Fprintf(out, "No books in catalog %s match %q\n", cat, match)
				} else {
					fmt.Fprintf(out, "Catalog %s is empty\n", cat)
				}
				return nil
			}

			fmt.Fprint(out, renderBookTable(table.Entries(), longFormat))
			fmt.Fprintf(out, "\n%d %s\n", table.Len(), pluralize(table.Len(), "book", "books"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "Only list titles containing this text")
	cmd.Flags().BoolVarP(&longFormat, "long-format", "l", false, "Include edition, ISBNs, and DOI columns")
	return cmd
}

func renderBookTable(entries []catalog.Entry, longFormat bool) string {
	if longFormat {
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				e.Title, e.Author, e.Edition, e.PackageName,
				e.PrintISBN, e.ElectronicISBN, e.DOIURL,
			})
		}
		return renderTable(
			[]string{"Title", "Author", "Edition", "Package", "Print ISBN", "eISBN", "DOI"},
			rows,
		)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Title, e.Author, e.PackageName})
	}
	return renderTable([]string{"Title", "Author", "Package"}, rows)
}

func newListPackagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List the packages in the selected catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			table, err := cat.Table(cmd.Context())
			if err != nil {
				return err
			}

			packages := table.Packages()
			names := table.PackageNames()

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "Catalog %s is empty\n", cat)
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name, fmt.Sprintf("%d", len(packages[name]))})
			}
			fmt.Fprint(out, renderTable([]string{"Package", "Books"}, rows, 1))
			fmt.Fprintf(out, "\n%d %s\n", len(names), pluralize(len(names), "package", "packages"))
			return nil
		},
	}
}

func newListPackageCommand(ctx *commandContext) *cobra.Command {
	var longFormat bool

	cmd := &cobra.Command{
		Use:   "package <name>",
		Short: "List the books in packages matching a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			table, err := cat.Table(cmd.Context())
			if err != nil {
				return err
			}
			filtered := table.FilterByPackage(args[0])

			out := cmd.OutOrStdout()
			if filtered.Len() == 0 {
				fmt.Fprintf(out, "No packages in catalog %s match %q\n", cat, args[0])
				return nil
			}

			fmt.Fprint(out, renderBookTable(filtered.Entries(), longFormat))
			fmt.Fprintf(out, "\n%d %s\n", filtered.Len(), pluralize(filtered.Len(), "book", "books"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&longFormat, "long-format", "l", false, "Include edition, ISBNs, and DOI columns")
	return cmd
}

func newListCatalogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the selected catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.openCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog:  %s (%s, %s)\n", cat, languageName(cat.Language()), topicName(cat.Topic()))
			fmt.Fprintf(out, "Source:   %s\n", cat.URL())
			fmt.Fprintf(out, "Cache:    %s\n", cat.CacheFile())
			fmt.Fprintf(out, "Cached:   %s\n", yesNo(cat.Cached()))
			if cat.Cached() {
				table, err := cat.Table(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Books:    %d\n", table.Len())
			}
			return nil
		},
	}
}

func newListCatalogsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List every known catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogs, err := ctx.openAllCatalogs()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(catalogs))
			for _, cat := range catalogs {
				rows = append(rows, []string{
					cat.String(),
					languageName(cat.Language()),
					topicName(cat.Topic()),
					yesNo(cat.Cached()),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(
				[]string{"Catalog", "Language", "Topic", "Cached"}, rows))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func languageName(lang catalog.Language) string {
	tag := language.Make(string(lang))
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return string(lang)
}

func topicName(topic catalog.Topic) string {
	switch topic {
	case catalog.TopicAllDisciplines:
		return "All Disciplines"
	case catalog.TopicEmergencyNursing:
		return "Emergency Nursing"
	default:
		return string(topic)
	}
}
