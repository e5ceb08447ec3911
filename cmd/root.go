package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kilianp07/evfleet/app"
	"github.com/kilianp07/evfleet/config"
	coremon "github.com/kilianp07/evfleet/core/monitoring"
	"github.com/kilianp07/evfleet/infra/logger"
	"github.com/kilianp07/evfleet/infra/monitoring"
)

var (
	cfgPath string
	envFile string
	cfg     *config.Config

	flushTimeout = 2 * time.Second
)

var rootCmd = &cobra.Command{
	Use:               "evfleet",
	Short:             "EV truck dispatch board",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              serve,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")
}

// Execute runs the CLI.
func Execute() error {
	defer func() { coremon.Flush(flushTimeout) }()
	return rootCmd.Execute()
}

// setup loads the environment and configuration shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	applyLogging(cfg.Logging)

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		logger.New("main").Errorf("sentry: %v", err)
	} else {
		coremon.Init(mon)
		flushTimeout = time.Duration(cfg.Sentry.FlushSeconds) * time.Second
	}
	return nil
}

// applyLogging exports the configured level and format to the variables
// read by the logger, without overriding values set in the environment.
func applyLogging(c config.LoggingConfig) {
	if os.Getenv("LOG_LEVEL") == "" {
		_ = os.Setenv("LOG_LEVEL", c.Level)
	}
	if c.Format == "console" && os.Getenv("APP_ENV") == "" {
		_ = os.Setenv("APP_ENV", "dev")
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func serve(_ *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
