package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var verbose bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pbta-tools",
		Short: "Analysis toolkit for pediatric brain tumor genomics tables",
		Long: `pbta-tools joins tabular genomic evidence (mutation calls, copy-number
losses, structural variants, fusions, clinical metadata, classifier
scores), classifies per-sample gene alteration status, filters fusion
calls, and runs group-comparison statistics.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newFilterFusionsCmd())
	cmd.AddCommand(newSummarizeCmd())
	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.pbta-tools.yaml if present and sets defaults.
func initConfig() error {
	viper.SetDefault("gene", "TP53")
	viper.SetDefault("hotspots.url", defaultHotspotsURL)
	viper.SetDefault("hotspots.min_samples", 0)

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}
	viper.SetDefault("data_dir", filepath.Join(home, ".pbta-tools"))

	viper.SetConfigName(".pbta-tools")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// newLogger returns a console logger on stderr. Debug level when --verbose.
func newLogger() *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openOutput returns stdout for an empty path, otherwise creates the file.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
