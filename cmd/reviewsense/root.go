package main

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/reviewsense/internal/version"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var modelDirFlag string

	ctx := newCommandContext(&configFlag, &modelDirFlag)

	rootCmd := &cobra.Command{
		Use:           "reviewsense",
		Short:         "Review sentiment analysis with a BiLSTM and a lexical fallback",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&modelDirFlag, "model-dir", "", "Directory holding the model artifacts (overrides config)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newBenchCommand(ctx))

	return rootCmd
}
