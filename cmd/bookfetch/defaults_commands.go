package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookfetch/internal/catalog"
	"bookfetch/internal/config"
)

func newGetDefaultCatalogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get-default-catalog",
		Short: "Show the catalog used when no language or topic is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			defaultsPath, err := config.DefaultsFilePath()
			if err != nil {
				return err
			}
			id, err := catalog.ResolveIdentity(defaultsPath, "", "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default catalog: %s (%s, %s)\n",
				id, languageName(id.Language), topicName(id.Topic))
			return nil
		},
	}
}

func newSetDefaultCatalogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default-catalog",
		Short: "Persist the -L/-T selection as the default catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.identity()
			if err != nil {
				return err
			}

			if _, err := ctx.openCatalog(); err != nil {
				return err
			}

			defaultsPath, err := config.DefaultsFilePath()
			if err != nil {
				return err
			}
			if err := catalog.SaveDefaults(defaultsPath, catalog.Defaults{
				Language: string(id.Language),
				Topic:    string(id.Topic),
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default catalog set to %s\n", id)
			return nil
		},
	}
}
