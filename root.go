package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/leonelquinteros/gotext"
	"github.com/spf13/cobra"

	"kmap/pkg/editor/config"
	"kmap/pkg/engine/input"
)

var rootCmd = &cobra.Command{
	Use:               "kmap",
	Short:             "Edit, check and export Karnaugh maps",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { closeLog() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kmap", Version)
	},
}

var (
	flagConfig     string
	flagLogLevel   string
	flagLocales    string
	closeLogTarget = func() error { return nil }
)

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: <user config dir>/kmap/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLocales, "locales", "locales", "directory holding translations")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(historyCmd)
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

// setup loads the config and installs logging, translations and key bindings
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", cfg.Path(), err)
	}
	config.SetCurrent(cfg)

	level := cfg.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger, closer, err := newLogger(level, cfg.LogFile)
	if err != nil {
		return err
	}
	closeLogTarget = closer
	slog.SetDefault(logger)
	gg.SetLogger(logger.With("component", "gg"))

	gotext.Configure(flagLocales, cfg.Locale, "default")

	if err := input.ApplyBindings(cfg.Bindings); err != nil {
		return fmt.Errorf("config %s: bindings: %w", cfg.Path(), err)
	}
	slog.Debug("config loaded", "path", cfg.Path())
	return nil
}

func closeLog() {
	if err := closeLogTarget(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not close log file: %v\n", err)
	}
	closeLogTarget = func() error { return nil }
}
