package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one digest cycle and deliver it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			resp := a.Orchestrator.Run(cmd.Context())
			out, err := json.Marshal(resp)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("run failed with status %d", resp.StatusCode)
			}
			return nil
		},
	}
}
