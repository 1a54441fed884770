package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runOnceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run-once",
		Short: "Run a single poll cycle in the foreground",
		Long: "Checks access, fetches every configured group once, and sends notifications " +
			"for matching posts. Every post in the feed is new to a single run.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.ctl.RunOnce(cmd.Context(), a.cfg.Settings())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"fetched %d, matched %d, sent %d, fetch failures %d, send failures %d\n",
				res.Fetched, res.Matched, res.Sent, res.FetchFailures, res.SendFailures)
			return nil
		},
	}
}
