// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/knowgrph/pkg/types"
)

func sampleRecords() []types.Record {
	return []types.Record{
		{
			GraphID: "sys:kg_001", Domain: "Technology", Category: "Core Stack", Stage: "Planning",
			EntityType: types.EntityComponent, Subject: "KnowGrph", Predicate: "uses", Object: "JSON-LD",
			SourceLocation: "README.md", SourceType: "Documentation", MetadataJSON: "{}",
		},
		{
			GraphID: "sys:kg_002", Domain: "Technology", Category: "Flow", Stage: "Planning",
			EntityType: types.EntityProcess, Subject: "CSV, \"A0\"", Predicate: "transforms_to", Object: "JSON-LD",
			Context: "multi\nline", SourceLocation: "README.md", SourceType: "Documentation", MetadataJSON: "{}",
		},
	}
}

func TestWriteHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRecords()))

	out := buf.String()
	firstLine := strings.SplitN(out, "\r\n", 2)[0]
	assert.Equal(t, strings.Join(types.Header, ","), firstLine)
	assert.Len(t, types.Header, 25)
	assert.Contains(t, out, "sys:kg_001,Technology,Core Stack,Planning,Component,KnowGrph,uses,JSON-LD,")
	assert.Contains(t, out, `"CSV, ""A0"""`)
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, strings.Join(types.Header, ",")+"\r\n", buf.String())
}

func TestWriteDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Write(&a, sampleRecords()))
	require.NoError(t, Write(&b, sampleRecords()))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "outputs", "a0.csv")
	require.NoError(t, WriteFile(path, sampleRecords()))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "required columns only",
			input:   "graph_id,domain,category,entity_type,subject,predicate,object\nsys:kg_001,Technology,Flow,Process,A,transforms_to,B\n",
			wantLen: 1,
		},
		{
			name:    "reordered columns with extras",
			input:   "object,extra,subject,predicate,entity_type,category,domain,graph_id\nB,x,A,uses,Component,Core Stack,Technology,sys:kg_001\n",
			wantLen: 1,
		},
		{
			name:    "header only",
			input:   strings.Join(types.Header, ",") + "\n",
			wantLen: 0,
		},
		{
			name:    "byte order mark",
			input:   "\ufeffgraph_id,domain,category,entity_type,subject,predicate,object\nid,d,c,Process,s,p,o\n",
			wantLen: 1,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "missing required column",
			input:   "graph_id,domain,category,entity_type,subject,predicate\nid,d,c,Process,s,p\n",
			wantErr: true,
		},
		{
			name:    "ragged row",
			input:   "graph_id,domain,category,entity_type,subject,predicate,object\nid,d,c\n",
			wantErr: true,
		},
		{
			name:    "unterminated quote",
			input:   "graph_id,domain,category,entity_type,subject,predicate,object\n\"id,d,c,Process,s,p,o\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Read(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedTable))
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tt.wantLen)
		})
	}
}

func TestReadReorderedColumnsMapsByName(t *testing.T) {
	input := "object,subject,predicate,entity_type,category,domain,graph_id\nB,A,uses,Component,Core Stack,Technology,sys:kg_001\n"
	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "sys:kg_001", r.GraphID)
	assert.Equal(t, "A", r.Subject)
	assert.Equal(t, "B", r.Object)
	assert.Equal(t, types.EntityComponent, r.EntityType)
	assert.Empty(t, r.Stage)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "a0.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
