// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowgrph/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run extract, jsonld, and rdf in order",
	Long: `Run creates the output directory and executes the three stages as
separate processes. It stops at the first stage that fails and exits with
that stage's exit code.`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	driver := pipeline.NewDriver(cfg, pipeline.Options{
		ConfigFile: cfgFile,
		Verbose:    verbose,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	return driver.Run(context.Background())
}
