package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/terratensor/sistem-dokumen/internal/config"
	"github.com/terratensor/sistem-dokumen/internal/logging"
	"github.com/terratensor/sistem-dokumen/internal/processor"
	"github.com/terratensor/sistem-dokumen/internal/runner"
)

var Version = "0.0.0"

var (
	configFile string
	logLevel   string
	workers    int
)

type appInstance struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Registry *processor.Registry
}

func newApp(configPath, level string, workerCount int) (*appInstance, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	// Флаги имеют приоритет над файлом конфигурации
	if level != "" {
		cfg.Log.Level = level
	}
	if workerCount > 0 {
		cfg.Workers = workerCount
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return &appInstance{
		Config:   cfg,
		Logger:   logger,
		Registry: processor.DefaultRegistry(),
	}, nil
}

func (a *appInstance) runner() *runner.Runner {
	return &runner.Runner{
		Registry: a.Registry,
		Workers:  a.Config.Workers,
		ErrorDir: a.Config.ErrorDir,
		MaxBytes: a.Config.MaxFileSize,
		Logger:   a.Logger,
	}
}

func appFromFlags() (*appInstance, error) {
	return newApp(configFile, logLevel, workers)
}

var rootCmd = &cobra.Command{
	Use:           "sistem-dokumen",
	Short:         "Process documents with format-specific processors",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Maximum number of concurrent files (default: number of CPUs)")

	rootCmd.AddCommand(processCmd, formatsCmd, vocabCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
