// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flow

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/knowgrph/pkg/types"
)

// ErrUnsupportedFormat reports an export format other than json or yaml.
var ErrUnsupportedFormat = errors.New("unsupported flow format")

// Extension returns the file extension for format.
func Extension(format types.OutputFormat) (string, error) {
	switch format {
	case types.OutputJSON:
		return ".json", nil
	case types.OutputYAML:
		return ".yaml", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Encode renders the diagram as indented JSON or as YAML.
func Encode(d *types.FlowDiagram, format types.OutputFormat) ([]byte, error) {
	switch format {
	case types.OutputJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	case types.OutputYAML:
		data, err := yaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Export writes the diagram to path in the given format, creating the
// parent directory.
func Export(d *types.FlowDiagram, format types.OutputFormat, path string) error {
	data, err := Encode(d, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Decode parses a diagram previously written by Encode.
func Decode(data []byte, format types.OutputFormat) (*types.FlowDiagram, error) {
	var d types.FlowDiagram
	switch format {
	case types.OutputJSON:
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing JSON flow: %w", err)
		}
	case types.OutputYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing YAML flow: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &d, nil
}

// ReadFile loads a diagram, choosing the decoder by file extension. Files
// ending in .yaml or .yml are YAML; everything else is JSON.
func ReadFile(path string) (*types.FlowDiagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	format := types.OutputJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = types.OutputYAML
	}
	d, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return d, nil
}
