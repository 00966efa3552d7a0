// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table reads and writes the A0 CSV: a fixed 25-column header
// followed by one row per record.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/knowgrph/pkg/types"
)

// ErrMalformedTable reports CSV input that cannot be read as an A0 table.
var ErrMalformedTable = errors.New("malformed A0 table")

// Write encodes records as CSV with the A0 header. Rows end in CRLF.
func Write(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(types.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Fields()); err != nil {
			return fmt.Errorf("writing row %s: %w", r.GraphID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes records to path, creating the parent directory.
func WriteFile(path string, records []types.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes an A0 table. Columns are matched by header name, so their
// order may differ from types.Header; columns that are not part of the A0
// schema are ignored. The header must contain types.RequiredColumns.
func Read(r io.Reader) ([]types.Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s",
			ErrMalformedTable, strings.Join(missing, ", "))
	}

	var records []types.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
		}

		var rec types.Record
		for i, col := range header {
			rec.SetField(col, row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadFile reads an A0 table from path.
func ReadFile(path string) ([]types.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table %s: %w", path, err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range types.RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
