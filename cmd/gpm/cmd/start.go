package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/group-post-monitor/internal/api/client"
	"github.com/donaldgifford/group-post-monitor/internal/control"
)

// startFlags maps each start flag to the viper key that backs it, so values
// can also come from ~/.gpm.yaml or GPM_* variables.
var startFlags = map[string]string{
	"groups":          "groups",
	"min-price":       "min_price",
	"max-price":       "max_price",
	"keywords":        "keywords",
	"sender":          "email_sender",
	"receiver":        "email_receiver",
	"smtp-server":     "smtp_server",
	"smtp-port":       "smtp_port",
	"password":        "email_password",
	"interval":        "check_interval",
	"schedule":        "schedule",
	"run-immediately": "run_immediately",
}

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start monitoring",
		Long: "Submits a monitor configuration to the server. The server validates it,\n" +
			"checks that every group can be read with its access token, and starts\n" +
			"polling. Any flag may instead be set in ~/.gpm.yaml using the key shown\n" +
			"in its description, or as a GPM_<KEY> environment variable.",
		Example: `  # Watch two groups for $500-$1200 posts mentioning parking
  gpm start --groups 1234,5678 --min-price 500 --max-price 1200 \
    --keywords parking --sender me@gmail.com --receiver me@gmail.com

  # Poll every five minutes, password from the environment
  GPM_EMAIL_PASSWORD=app-password gpm start --groups 1234 \
    --min-price 0 --max-price 900 --sender me@gmail.com --receiver me@gmail.com \
    --interval 300`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := startRequestFromViper()
			c := newClient()
			st, err := c.StartMonitor(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), st)
			}
			return printStatus(cmd.OutOrStdout(), st)
		},
	}

	f := cmd.Flags()
	f.String("groups", "", "comma-separated group ids (key: groups)")
	f.Int("min-price", 0, "lowest acceptable price (key: min_price)")
	f.Int("max-price", 0, "highest acceptable price (key: max_price)")
	f.String("keywords", "", "comma-separated keywords, all must match (key: keywords)")
	f.String("sender", "", "sender address and SMTP login (key: email_sender)")
	f.String("receiver", "", "receiver address (key: email_receiver)")
	f.String("smtp-server", "", "SMTP host, server default smtp.gmail.com (key: smtp_server)")
	f.Int("smtp-port", 0, "SMTP port, server default 587 (key: smtp_port)")
	f.String("password", "", "SMTP password (key: email_password)")
	f.Int("interval", 0, "seconds between cycles, server default 60 (key: check_interval)")
	f.String("schedule", "", "cron expression overriding --interval (key: schedule)")
	f.Bool("run-immediately", false, "run the first cycle right away (key: run_immediately)")

	for flag, key := range startFlags {
		cobra.CheckErr(viper.BindPFlag(key, f.Lookup(flag)))
	}

	return cmd
}

// startRequestFromViper builds the start request from flags, config file,
// and environment, in viper's precedence order.
func startRequestFromViper() *apiclient.StartRequest {
	return &apiclient.StartRequest{
		Groups:         listValue("groups"),
		MinPrice:       viper.GetInt("min_price"),
		MaxPrice:       viper.GetInt("max_price"),
		Keywords:       listValue("keywords"),
		EmailSender:    viper.GetString("email_sender"),
		EmailReceiver:  viper.GetString("email_receiver"),
		SMTPServer:     viper.GetString("smtp_server"),
		SMTPPort:       viper.GetInt("smtp_port"),
		EmailPassword:  viper.GetString("email_password"),
		CheckInterval:  viper.GetInt("check_interval"),
		Schedule:       viper.GetString("schedule"),
		RunImmediately: viper.GetBool("run_immediately"),
	}
}

// listValue reads a list that may be a YAML sequence in the config file or
// a comma-separated string from a flag or environment variable.
func listValue(key string) []string {
	switch v := viper.Get(key).(type) {
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
		return control.Clean(items)
	case []string:
		return control.Clean(v)
	default:
		return control.SplitList(viper.GetString(key))
	}
}
