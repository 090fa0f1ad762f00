package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dailyfeed/app"
	"dailyfeed/logger"
	"dailyfeed/tui"
)

func newPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Build today's digest in the terminal without sending it",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the preview; logs only go to the daily file.
			cfg, err := loadConfigOnly()
			if err != nil {
				return err
			}
			log, err := logger.NewFileOnly(logger.Config{Level: cfg.LogLevel, Dir: cfg.LogDirectory()})
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg, app.WithLogger(log))
			if err != nil {
				return fmt.Errorf("wire app: %w", err)
			}
			defer a.Close()
			defer log.Sync()

			p := tea.NewProgram(tui.NewModel(cmd.Context(), a.Orchestrator), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			return nil
		},
	}
}
