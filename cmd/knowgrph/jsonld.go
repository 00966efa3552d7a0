// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowgrph/internal/jsonld"
	"github.com/pdiddy/knowgrph/internal/table"
)

var jsonldCmd = &cobra.Command{
	Use:   "jsonld",
	Short: "Wrap the A0 table as a JSON-LD document",
	Long: `JSON-LD reads the A0 CSV written by extract and writes a JSON-LD
document with the fixed vocabulary context and one graph node per row.`,
	Args: cobra.NoArgs,
	RunE: runJSONLD,
}

func init() {
	rootCmd.AddCommand(jsonldCmd)
}

func runJSONLD(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := table.ReadFile(cfg.Paths.TablePath())
	if err != nil {
		return err
	}

	doc := jsonld.Wrap(records)
	path := cfg.Paths.DocumentPath()
	if err := doc.WriteFile(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d nodes to %s\n", len(doc.Graph), path)
	return nil
}
