// Command server runs the allocation dashboard HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"allocation-dashboard/internal/ask"
	"allocation-dashboard/internal/config"
	"allocation-dashboard/internal/loader"
	"allocation-dashboard/internal/logging"
	"allocation-dashboard/internal/observability"
	"allocation-dashboard/internal/server"
	"allocation-dashboard/internal/source"
)

var (
	configPath string // YAML config file
	envFile    string // optional .env file
	listenAddr string // overrides server.listen_addr
	period     string // overrides default_period
	logLevel   string // overrides log.level
	noAutoLoad bool   // skip loading default_period on start
)

var rootCmd = &cobra.Command{
	Use:          "allocdash-server",
	Short:        "Serve the allocation dashboard",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			cfg.Server.ListenAddr = listenAddr
		}
		if cmd.Flags().Changed("period") {
			cfg.DefaultPeriod = period
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}

		logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, "allocdash-server")
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg, logger)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to .env file (skipped when missing)")
	rootCmd.Flags().StringVar(&listenAddr, "listen", config.DefaultListenAddr, "HTTP listen address")
	rootCmd.Flags().StringVar(&period, "period", config.DefaultPeriod, "Period loaded on start")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&noAutoLoad, "no-auto-load", false, "Do not load the default period on start")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	m := observability.DefaultMetrics

	src, closeSrc, err := source.Open(ctx, cfg.SourceOptions())
	if err != nil {
		return fmt.Errorf("opening %s source: %w", cfg.Source.Kind, err)
	}
	defer closeSrc()

	pipeline, err := loader.New(loader.Options{
		Strategies:   cfg.Strategies,
		Source:       src,
		PathPattern:  cfg.PathPattern,
		SupplyPolicy: cfg.Policy(),
		Logger:       logger.Named("loader"),
		Metrics:      m,
	})
	if err != nil {
		return err
	}

	session := loader.NewSession(pipeline, logger.Named("session"), m)
	defer session.Close()

	hub := server.NewHub(session.Current, logger.Named("ws"), m)
	updates, unsubscribe := session.Subscribe()
	defer unsubscribe()
	go hub.Run(ctx, updates)

	opts := server.Options{
		Session:   session,
		Pipeline:  pipeline,
		Hub:       hub,
		AskRate:   cfg.Server.AskRate,
		AskBurst:  cfg.Server.AskBurst,
		StaticDir: cfg.Server.StaticDir,
		Logger:    logger,
		Metrics:   m,
	}
	if cfg.Source.Kind == source.KindFile {
		opts.ResultsDir = cfg.Source.Dir
	}
	if cfg.Ask.Endpoint != "" {
		opts.Remote = ask.NewClient(cfg.Ask.Endpoint,
			ask.WithTimeout(cfg.Ask.Timeout),
			ask.WithLogger(logger.Named("ask")),
		)
	}

	if !noAutoLoad && cfg.DefaultPeriod != "" {
		go func() {
			if _, err := session.Load(ctx, cfg.DefaultPeriod); err != nil {
				logger.Warn("initial load failed", zap.String("period", cfg.DefaultPeriod), zap.Error(err))
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: server.New(opts).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.Server.ListenAddr),
			zap.String("mode", cfg.Mode),
			zap.String("source", src.Kind()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
