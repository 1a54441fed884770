package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/group-post-monitor/internal/control"
)

func checkCommand() *cobra.Command {
	var groups string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the access token can read every configured group",
		Long: "Loads the access token from the credentials file and requests the feed of " +
			"each group once. Exits non-zero on the first group that cannot be read.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ids := a.cfg.Monitor.Groups
			if groups != "" {
				ids = control.SplitList(groups)
			}
			ids = control.Clean(ids)
			if len(ids) == 0 {
				return fmt.Errorf("%w: no groups to check", control.ErrInvalidInput)
			}

			if _, err := a.ctl.Check(cmd.Context(), ids); err != nil {
				return err
			}
			for _, g := range ids {
				fmt.Fprintf(cmd.OutOrStdout(), "group %s: ok\n", g)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&groups, "groups", "", "comma-separated group ids (default from config)")
	return cmd
}
