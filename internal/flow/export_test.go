// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flow

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/knowgrph/pkg/types"
)

func TestExportAndReadFile(t *testing.T) {
	d := FromDocument(sampleDoc(), fixedNow)

	for _, format := range []types.OutputFormat{types.OutputJSON, types.OutputYAML} {
		t.Run(string(format), func(t *testing.T) {
			ext, err := Extension(format)
			require.NoError(t, err)
			path := filepath.Join(t.TempDir(), "out", "flow"+ext)

			require.NoError(t, Export(d, format, path))
			got, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, d, got)
		})
	}
}

func TestEncodeShapes(t *testing.T) {
	d := FromDocument(sampleDoc(), fixedNow)

	data, err := Encode(d, types.OutputJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"id\": \"readme-flow\","))
	assert.Contains(t, string(data), `"node_type": "input"`)

	data, err = Encode(d, types.OutputYAML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id: readme-flow\n"))
	assert.Contains(t, string(data), "edge_type: default")
}

func TestUnsupportedFormat(t *testing.T) {
	d := FromDocument(sampleDoc(), fixedNow)

	_, err := Encode(d, "xml")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Extension("xml")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Decode([]byte("{}"), "xml")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	err = Export(d, "xml", filepath.Join(t.TempDir(), "flow.xml"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("nodes: [unclosed"), 0o644))
	_, err = ReadFile(bad)
	assert.Error(t, err)

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{"), 0o644))
	_, err = ReadFile(badJSON)
	assert.Error(t, err)
}
