package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dailyfeed/app"
	"dailyfeed/config"
)

// rootCmd represents the root command for the dailyfeed CLI.
var rootCmd = &cobra.Command{
	Use:   "dailyfeed",
	Short: "Daily feed digest",
	Long:  `Collects today's RSS/Atom entries and AI News issue, summarizes them and emails the digest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newSourcesCommand())
}

// loadApp resolves the configuration and wires the job.
func loadApp(ctx context.Context, opts ...app.Option) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	a, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("wire app: %w", err)
	}
	return a, nil
}
