package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"dailyfeed/config"
	"dailyfeed/logger"
)

func newSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOnly()
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Config{Level: cfg.LogLevel})
			if err != nil {
				return err
			}
			defer log.Sync()

			sources := config.LoadSources(cfg.SourcesFile, log)
			if len(sources) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No sources configured in %s\n", cfg.SourcesFile)
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Type", "URL", "Read"})
			for i, s := range sources {
				read := "yes"
				if !s.Type.IsFeed() {
					read = "skipped"
				}
				t.AppendRow(table.Row{i + 1, s.Type, s.URL, read})
			}
			t.Render()
			return nil
		},
	}
	cmd.AddCommand(newSourcesInitCommand())
	return cmd
}

func newSourcesInitCommand() *cobra.Command {
	var presets []string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a source list from feed presets",
		Long:  "Create a source list from feed presets. Available presets: " + strings.Join(config.PresetKeys(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOnly()
			if err != nil {
				return err
			}
			if len(presets) == 0 {
				presets = config.PresetKeys()
			}
			if err := config.WriteSources(cfg.SourcesFile, presets); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sources to %s\n", len(presets), cfg.SourcesFile)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&presets, "preset", nil, "preset keys to include (default all)")
	return cmd
}

func loadConfigOnly() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
