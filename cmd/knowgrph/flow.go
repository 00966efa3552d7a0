// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowgrph/internal/flow"
	"github.com/pdiddy/knowgrph/internal/jsonld"
	"github.com/pdiddy/knowgrph/pkg/types"
)

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Convert between the JSON-LD graph and a flow diagram",
	Long: `Flow renders the JSON-LD graph as a flow diagram of labelled nodes and
typed edges laid out by level, or turns an edited diagram back into a
JSON-LD document.`,
}

// --- export subcommand ---

var flowExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the JSON-LD graph as a flow diagram",
	Long: `Export reads the JSON-LD document, builds a flow diagram, and writes
it as JSON or YAML next to the other outputs (data/outputs/flow.json by
default).`,
	Args: cobra.NoArgs,
	RunE: runFlowExport,
}

func runFlowExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := cfg.Flow.Format
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		format = types.OutputFormat(f)
	}
	ext, err := flow.Extension(format)
	if err != nil {
		return err
	}

	doc, err := jsonld.ReadFile(cfg.Paths.DocumentPath())
	if err != nil {
		return err
	}
	diagram := flow.FromDocument(doc, time.Now())

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = filepath.Join(cfg.Paths.OutputPath(), cfg.Flow.File+ext)
	}
	if err := flow.Export(diagram, format, path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote flow with %d nodes and %d edges to %s\n",
		len(diagram.Nodes), len(diagram.Edges), path)
	return nil
}

// --- import subcommand ---

var flowImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Convert a flow diagram file into a JSON-LD document",
	Long: `Import reads a flow diagram (JSON, or YAML for .yaml/.yml files) and
writes a JSON-LD document with one node per edge. By default the result
replaces the pipeline's JSON-LD document so the rdf stage picks it up.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlowImport,
}

func runFlowImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	diagram, err := flow.ReadFile(args[0])
	if err != nil {
		return err
	}
	doc := flow.ToDocument(diagram)

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = cfg.Paths.DocumentPath()
	}
	if err := doc.WriteFile(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d nodes to %s\n", len(doc.Graph), path)
	return nil
}

func init() {
	flowExportCmd.Flags().String("format", "", "export format: json or yaml (default from config, json)")
	flowExportCmd.Flags().String("output", "", "output file (default: <output_dir>/flow.<ext>)")
	flowImportCmd.Flags().String("output", "", "output JSON-LD file (default: the pipeline's a0.jsonld)")

	flowCmd.AddCommand(flowExportCmd)
	flowCmd.AddCommand(flowImportCmd)
	rootCmd.AddCommand(flowCmd)
}
