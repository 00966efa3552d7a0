// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/knowgrph/pkg/types"
)

const sampleReadme = "# KnowGrph\n\n" +
	"## Core Stack\n\n" +
	"- **Markdown** + **CSV** (A0 schema)\n" +
	"- JSON-LD + RDF\n\n" +
	"## FOSS Tools (totally free solutions)\n\n" +
	"1. **rdflib** (Python)\n\n" +
	"## ✅ MVP Principles\n\n" +
	"- **Simplicity first** over features\n\n" +
	"## Example Flow\n\n" +
	"```text\n" +
	"Markdown → CSV → JSON-LD\n" +
	"```\n"

// workspace writes a README and a config file rooted at a temp directory.
func workspace(t *testing.T, extra string) (root, cfgPath string) {
	t.Helper()
	root = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte(sampleReadme), 0o644))

	cfgPath = filepath.Join(root, "knowgrph.yaml")
	cfg := "paths:\n  root: " + root + "\n" + extra
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return root, cfgPath
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	viper.Reset()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	_, cfgPath := workspace(t, "serialization:\n  format: ntriples\nextraction:\n  subject: Demo\n")

	viper.Reset()
	viper.SetConfigFile(cfgPath)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, types.FormatNTriples, cfg.Serialization.Format)
	assert.Equal(t, "Demo", cfg.Extraction.Subject)
	assert.Equal(t, "Technology", cfg.Extraction.Domain)
	assert.Equal(t, "sys:kg_", cfg.Extraction.IDPrefix)
	assert.Equal(t, "a0.csv", cfg.Paths.TableFile)
	assert.Equal(t, filepath.Join("data", "outputs"), cfg.Paths.OutputDir)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	viper.Reset()
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultPipelineConfig(), cfg)
}

func TestStagesEndToEnd(t *testing.T) {
	root, cfgPath := workspace(t, "")
	out := filepath.Join(root, "data", "outputs")

	require.NoError(t, execute(t, "extract", "--config", cfgPath))
	csv, err := os.ReadFile(filepath.Join(out, "a0.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csv), "graph_id,domain,category,"))
	// Header plus four components, one tool, one principle, two transitions.
	assert.Equal(t, 9, strings.Count(string(csv), "\r\n"))

	require.NoError(t, execute(t, "jsonld", "--config", cfgPath))
	doc, err := os.ReadFile(filepath.Join(out, "a0.jsonld"))
	require.NoError(t, err)
	var raw struct {
		Graph []map[string]string `json:"@graph"`
	}
	require.NoError(t, json.Unmarshal(doc, &raw))
	require.Len(t, raw.Graph, 8)
	assert.Equal(t, "sys:kg_008", raw.Graph[7]["id"])

	require.NoError(t, execute(t, "rdf", "--config", cfgPath))
	ttl, err := os.ReadFile(filepath.Join(out, "a0.ttl"))
	require.NoError(t, err)
	assert.Contains(t, string(ttl), "a vocab:Component")
	assert.Equal(t, len(raw.Graph), subjectBlocks(string(ttl)), "one triple block per node")
}

// subjectBlocks counts Turtle subject lines.
func subjectBlocks(ttl string) int {
	n := 0
	for _, line := range strings.Split(ttl, "\n") {
		if strings.HasPrefix(line, "<sys:kg_") {
			n++
		}
	}
	return n
}

func TestStagesReproducible(t *testing.T) {
	root, cfgPath := workspace(t, "")
	out := filepath.Join(root, "data", "outputs")
	files := []string{"a0.csv", "a0.jsonld", "a0.ttl"}

	run := func() map[string][]byte {
		for _, stage := range []string{"extract", "jsonld", "rdf"} {
			require.NoError(t, execute(t, stage, "--config", cfgPath))
		}
		got := make(map[string][]byte)
		for _, name := range files {
			data, err := os.ReadFile(filepath.Join(out, name))
			require.NoError(t, err)
			got[name] = data
		}
		return got
	}

	first := run()
	for i := 0; i < 3; i++ {
		again := run()
		for _, name := range files {
			assert.True(t, bytes.Equal(first[name], again[name]), "%s differs on run %d", name, i+2)
		}
	}
}

func TestRDFNTriplesFormat(t *testing.T) {
	root, cfgPath := workspace(t, "serialization:\n  format: ntriples\n")
	out := filepath.Join(root, "data", "outputs")

	require.NoError(t, execute(t, "extract", "--config", cfgPath))
	require.NoError(t, execute(t, "jsonld", "--config", cfgPath))
	require.NoError(t, execute(t, "rdf", "--config", cfgPath))

	_, err := os.Stat(filepath.Join(out, "a0.nt"))
	assert.NoError(t, err)
}

func TestRDFRejectsUnknownFormat(t *testing.T) {
	_, cfgPath := workspace(t, "serialization:\n  format: rdfxml\n")
	require.NoError(t, execute(t, "extract", "--config", cfgPath))
	require.NoError(t, execute(t, "jsonld", "--config", cfgPath))
	assert.Error(t, execute(t, "rdf", "--config", cfgPath))
}

func TestExtractMissingReadme(t *testing.T) {
	root, cfgPath := workspace(t, "")
	require.NoError(t, os.Remove(filepath.Join(root, "README.md")))
	assert.Error(t, execute(t, "extract", "--config", cfgPath))
}

func TestFlowExportAndImport(t *testing.T) {
	root, cfgPath := workspace(t, "")
	out := filepath.Join(root, "data", "outputs")

	require.NoError(t, execute(t, "extract", "--config", cfgPath))
	require.NoError(t, execute(t, "jsonld", "--config", cfgPath))

	flowPath := filepath.Join(out, "flow.yaml")
	require.NoError(t, execute(t, "flow", "export", "--config", cfgPath, "--format", "yaml", "--output", flowPath))
	data, err := os.ReadFile(flowPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "layout_type: flow")

	imported := filepath.Join(out, "imported.jsonld")
	require.NoError(t, execute(t, "flow", "import", flowPath, "--config", cfgPath, "--output", imported))
	doc, err := os.ReadFile(imported)
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"id": "ui:flow_001"`)
	assert.Contains(t, string(doc), `"source_location": "README.md#Example Flow"`)
}

func TestFlowExportHandEditedContext(t *testing.T) {
	root, cfgPath := workspace(t, "")
	out := filepath.Join(root, "data", "outputs")
	require.NoError(t, os.MkdirAll(out, 0o755))

	doc := `{
  "@context": {
    "@vocab": "https://example.org/vocab#",
    "id": "@id",
    "type": "@type",
    "created": {"@id": "https://example.org/created", "@type": "http://www.w3.org/2001/XMLSchema#date"}
  },
  "@graph": [
    {"id": "sys:kg_001", "type": "Process", "subject": "Markdown", "predicate": "transforms_to", "object": "CSV"}
  ]
}`
	require.NoError(t, os.WriteFile(filepath.Join(out, "a0.jsonld"), []byte(doc), 0o644))

	flowPath := filepath.Join(out, "flow.json")
	require.NoError(t, execute(t, "flow", "export", "--config", cfgPath, "--format", "json", "--output", flowPath))
	data, err := os.ReadFile(flowPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "node-markdown"`)
	assert.Contains(t, string(data), `"target": "node-csv"`)
}

func TestFormatQueryOutput(t *testing.T) {
	records := []types.Record{
		{GraphID: "sys:kg_001", Category: "Core Stack", EntityType: types.EntityComponent,
			Subject: "KnowGrph", Predicate: "uses", Object: "Markdown"},
	}

	var buf bytes.Buffer
	require.NoError(t, formatQueryOutput(&buf, records, false))
	assert.Contains(t, buf.String(), "sys:kg_001")
	assert.Contains(t, buf.String(), "1 results")

	buf.Reset()
	require.NoError(t, formatQueryOutput(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatQueryOutput(&buf, nil, true))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, formatQueryOutput(&buf, records, true))
	var decoded []types.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, records, decoded)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	// Counts runes, so a multi-byte label is never split mid-character.
	assert.Equal(t, "Ärger über", truncate("Ärger über", 10))
	got := truncate("Überprüfung → Ergebnis", 10)
	assert.Equal(t, "Überprü...", got)
	assert.True(t, utf8.ValidString(got))
}
