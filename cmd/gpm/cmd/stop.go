package cmd

import (
	"github.com/spf13/cobra"
)

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop monitoring",
		Long:  "Stops the poll loop and waits for it to exit. Last-seen state is discarded.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			st, err := c.StopMonitor(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), st)
			}
			return printStatus(cmd.OutOrStdout(), st)
		},
	}
}
