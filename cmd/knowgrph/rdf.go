// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowgrph/internal/rdf"
	"github.com/pdiddy/knowgrph/pkg/types"
)

var rdfCmd = &cobra.Command{
	Use:   "rdf",
	Short: "Serialize the JSON-LD document as RDF triples",
	Long: `RDF loads the JSON-LD document written by the jsonld stage into an
RDF graph and writes it as Turtle (default) or N-Triples, selected by
serialization.format in the config file.`,
	Args: cobra.NoArgs,
	RunE: runRDF,
}

func init() {
	rootCmd.AddCommand(rdfCmd)
}

func runRDF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := cfg.Serialization.Format
	if _, ok := rdf.Extensions[format]; !ok {
		return fmt.Errorf("unsupported serialization format %q (want %s or %s)",
			format, types.FormatTurtle, types.FormatNTriples)
	}

	g, err := rdf.ReadFile(cfg.Paths.DocumentPath())
	if err != nil {
		return err
	}

	path := rdf.OutputPath(cfg.Paths.GraphPath(), format)
	if err := g.WriteFile(path, format); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d triples for %d subjects to %s\n", g.Len(), len(g.Subjects()), path)
	return nil
}
