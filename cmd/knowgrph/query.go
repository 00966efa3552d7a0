// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowgrph/internal/index"
	"github.com/pdiddy/knowgrph/internal/table"
	"github.com/pdiddy/knowgrph/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter the A0 table",
	Long: `Query loads the A0 CSV into an in-memory SQLite index and prints the
records matching every given filter, in table order. Nothing is stored.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("subject", "", "exact subject")
	queryCmd.Flags().String("predicate", "", "exact predicate")
	queryCmd.Flags().String("object", "", "exact object")
	queryCmd.Flags().String("category", "", "exact category (e.g. \"Core Stack\", Flow)")
	queryCmd.Flags().String("type", "", "entity type: Component or Process")
	queryCmd.Flags().String("text", "", "case-insensitive substring of subject or object")
	queryCmd.Flags().Int("limit", 0, "maximum number of results (0 = all)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := table.ReadFile(cfg.Paths.TablePath())
	if err != nil {
		return err
	}

	ctx := context.Background()
	idx, err := index.Open(ctx)
	if err != nil {
		return err
	}
	defer idx.Close()

	if err := idx.Load(ctx, records); err != nil {
		return err
	}

	results, err := idx.Query(ctx, filterFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(os.Stdout, results, jsonOutput)
}

func filterFromFlags(cmd *cobra.Command) index.Filter {
	var f index.Filter
	f.Subject, _ = cmd.Flags().GetString("subject")
	f.Predicate, _ = cmd.Flags().GetString("predicate")
	f.Object, _ = cmd.Flags().GetString("object")
	f.Category, _ = cmd.Flags().GetString("category")
	f.Text, _ = cmd.Flags().GetString("text")
	f.Limit, _ = cmd.Flags().GetInt("limit")
	entityType, _ := cmd.Flags().GetString("type")
	f.EntityType = types.EntityType(entityType)
	return f
}

func formatQueryOutput(w io.Writer, results []types.Record, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []types.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-12s  %-14s  %-10s  %-20s  %-14s  %s\n",
		"ID", "Category", "Type", "Subject", "Predicate", "Object")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range results {
		fmt.Fprintf(w, "%-12s  %-14s  %-10s  %-20s  %-14s  %s\n",
			r.GraphID, r.Category, r.EntityType, truncate(r.Subject, 20), r.Predicate, r.Object)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
