// Command report loads one period and renders the dashboard as Markdown,
// CSV or JSON.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"allocation-dashboard/internal/config"
	"allocation-dashboard/internal/loader"
	"allocation-dashboard/internal/logging"
	"allocation-dashboard/internal/reporting"
	"allocation-dashboard/internal/source"
)

// Output formats.
const (
	formatMarkdown   = "markdown"
	formatCSV        = "csv"
	formatSummaryCSV = "summary-csv"
	formatJSON       = "json"
)

var (
	configPath string
	envFile    string
	period     string
	format     string
	outputDir  string // when set, every format is written here
	resultsDir string // overrides source.dir
)

var rootCmd = &cobra.Command{
	Use:          "allocdash-report",
	Short:        "Render the allocation dashboard for one period",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("results-dir") {
			cfg.Source.Kind = source.KindFile
			cfg.Source.Dir = resultsDir
		}
		if !cmd.Flags().Changed("period") {
			period = cfg.DefaultPeriod
		}

		// Diagnostics go to stderr so stdout stays clean for the report.
		logger, err := logging.New(logging.Config{Level: "warn", Format: "console"}, "")
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		r, err := generate(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		if outputDir != "" {
			return writeAll(r, outputDir)
		}
		out, err := render(r, format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to .env file (skipped when missing)")
	rootCmd.Flags().StringVar(&period, "period", config.DefaultPeriod, "Period to load")
	rootCmd.Flags().StringVar(&format, "format", formatMarkdown, "Output format: markdown, csv, summary-csv, json")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Write every format into this directory instead of stdout")
	rootCmd.Flags().StringVar(&resultsDir, "results-dir", "", "Read datasets from this directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generate(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*reporting.Report, error) {
	src, closeSrc, err := source.Open(ctx, cfg.SourceOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s source: %w", cfg.Source.Kind, err)
	}
	defer closeSrc()

	p, err := loader.New(loader.Options{
		Strategies:   cfg.Strategies,
		Source:       src,
		PathPattern:  cfg.PathPattern,
		SupplyPolicy: cfg.Policy(),
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	return reporting.NewGenerator(p).Generate(ctx, period)
}

func render(r *reporting.Report, format string) (string, error) {
	switch format {
	case formatMarkdown:
		return reporting.RenderMarkdown(r), nil
	case formatCSV:
		return reporting.RenderCSV(r)
	case formatSummaryCSV:
		return reporting.RenderSummaryCSV(r), nil
	case formatJSON:
		b, err := reporting.RenderJSON(r)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func writeAll(r *reporting.Report, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := []struct {
		name   string
		format string
	}{
		{"DASHBOARD_" + r.Period + ".md", formatMarkdown},
		{"ALLOCATIONS_" + r.Period + ".csv", formatCSV},
		{"SUMMARY_" + r.Period + ".csv", formatSummaryCSV},
		{"DASHBOARD_" + r.Period + ".json", formatJSON},
	}
	for _, f := range files {
		out, err := render(r, f.format)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf("  - %s\n", path)
	}
	return nil
}
