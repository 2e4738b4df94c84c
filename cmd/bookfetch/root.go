package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var languageFlag string
	var topicFlag string
	var configFlag string

	ctx := newCommandContext(&languageFlag, &topicFlag, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "bookfetch",
		Short:         "Bulk downloader for publisher book catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&languageFlag, "language", "L", "", "Catalog language (en or de)")
	rootCmd.PersistentFlags().StringVarP(&topicFlag, "topic", "T", "", "Catalog topic (all or med)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newDownloadCommand(ctx))
	rootCmd.AddCommand(newRefreshCatalogCommand(ctx))
	rootCmd.AddCommand(newCleanCatalogCommand(ctx))
	rootCmd.AddCommand(newGetDefaultCatalogCommand(ctx))
	rootCmd.AddCommand(newSetDefaultCatalogCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
