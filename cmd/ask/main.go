// Command ask sends a question about one period to the ask endpoint and
// prints the answer.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"allocation-dashboard/internal/ask"
	"allocation-dashboard/internal/config"
	"allocation-dashboard/internal/logging"
)

var (
	configPath string
	envFile    string
	endpoint   string
	period     string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "allocdash-ask [question]",
	Short:        "Ask a question about an allocation period",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("endpoint") || cfg.Ask.Endpoint == "" {
			cfg.Ask.Endpoint = endpoint
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Ask.Timeout = timeout
		}
		if !cmd.Flags().Changed("period") {
			period = cfg.DefaultPeriod
		}

		logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: "console"}, "")
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		client := ask.NewClient(cfg.Ask.Endpoint,
			ask.WithTimeout(cfg.Ask.Timeout),
			ask.WithLogger(logger),
		)
		answer := client.Ask(cmd.Context(), period, strings.Join(args, " "))
		_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to .env file (skipped when missing)")
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8080/ask", "Ask endpoint URL")
	rootCmd.Flags().StringVar(&period, "period", config.DefaultPeriod, "Period the question is about")
	rootCmd.Flags().DurationVar(&timeout, "timeout", config.DefaultAskTimeout, "Request timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
