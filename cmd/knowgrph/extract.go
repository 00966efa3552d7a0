// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowgrph/internal/extract"
	"github.com/pdiddy/knowgrph/internal/table"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract A0 records from README.md into a CSV table",
	Long: `Extract reads the project README and emits one A0 record per
component, FOSS tool, MVP principle, and Example Flow transition. The table
is written to data/outputs/a0.csv unless the config file says otherwise.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := extract.New(cfg.Extraction).ExtractFile(cfg.Paths.ReadmePath())
	if err != nil {
		return err
	}

	path := cfg.Paths.TablePath()
	if err := table.WriteFile(path, records); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", len(records), path)
	return nil
}
