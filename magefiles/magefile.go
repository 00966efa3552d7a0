//go:build mage

// Package main contains Mage build targets for knowgrph developer tooling.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// outputDir is where the pipeline writes a0.csv, a0.jsonld, and a0.ttl.
var outputDir = filepath.Join("data", "outputs")

// Init creates the output directory the pipeline expects.
func Init() error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outputDir, err)
	}
	fmt.Println("  ", outputDir)
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "knowgrph"
	cmdPkg  = "./cmd/knowgrph"
)

// binPath is the CLI binary built by Build.
var binPath = filepath.Join(binDir, binName)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	if err := sh.RunV("go", "build", "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Pipeline builds the CLI and runs all three stages against README.md.
func Pipeline() error {
	mg.SerialDeps(Init, Build)
	return sh.RunV(binPath, "run")
}

// Stats prints the size of each pipeline output: table rows, graph nodes,
// and Turtle statements.
func Stats() error {
	rows, err := countRows(filepath.Join(outputDir, "a0.csv"))
	if err != nil {
		return err
	}
	nodes, err := countNodes(filepath.Join(outputDir, "a0.jsonld"))
	if err != nil {
		return err
	}
	statements, err := countStatements(filepath.Join(outputDir, "a0.ttl"))
	if err != nil {
		return err
	}

	fmt.Printf("Records (a0.csv):       %d\n", rows)
	fmt.Printf("Graph nodes (a0.jsonld): %d\n", nodes)
	fmt.Printf("Triples (a0.ttl):       %d\n", statements)
	return nil
}

// countRows returns the number of data rows after the header.
func countRows(path string) (int, error) {
	data, err := readOptional(path)
	if err != nil || data == nil {
		return 0, err
	}
	rows := bytes.Count(data, []byte("\n")) - 1
	return max(rows, 0), nil
}

func countNodes(path string) (int, error) {
	data, err := readOptional(path)
	if err != nil || data == nil {
		return 0, err
	}
	var doc struct {
		Graph []json.RawMessage `json:"@graph"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	return len(doc.Graph), nil
}

// countStatements counts predicate-object lines, one per triple in the
// writer's block layout.
func countStatements(path string) (int, error) {
	data, err := readOptional(path)
	if err != nil || data == nil {
		return 0, err
	}
	total := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "    ") {
			total++
		}
	}
	return total, nil
}

// readOptional returns nil data when path does not exist yet.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
