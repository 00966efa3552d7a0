// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the knowgrph CLI. Each pipeline stage
// is a subcommand; run chains them as child processes.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/knowgrph/internal/pipeline"
	"github.com/pdiddy/knowgrph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the knowgrph CLI.
var rootCmd = &cobra.Command{
	Use:   "knowgrph",
	Short: "Turn a project README into a linked-data knowledge graph",
	Long: `knowgrph reads README.md, extracts the Core Stack, FOSS Tools,
MVP Principles, and Example Flow sections into an A0 CSV table, wraps the
table as a JSON-LD document, and serializes the graph as RDF triples.

Each stage is a subcommand: extract, jsonld, and rdf. The run command
executes all three in order, each in its own process.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./knowgrph.yaml or ~/.config/knowgrph/knowgrph.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("knowgrph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "knowgrph"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig overlays the values read by viper on the default layout. Keys
// absent from the config file keep their defaults.
func loadConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	slog.Debug("loaded config", "root", cfg.Paths.Root, "output_dir", cfg.Paths.OutputDir, "format", cfg.Serialization.Format)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			os.Exit(stageErr.Code)
		}
		os.Exit(1)
	}
}
