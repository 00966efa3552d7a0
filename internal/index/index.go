// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index loads A0 records into an in-memory SQLite database and
// answers filtered queries over them. Nothing is written to disk.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/knowgrph/pkg/types"
)

// Index is an in-memory table of records in insertion order.
type Index struct {
	db *sql.DB
}

// Filter selects records by exact column match. Empty fields match
// everything. Text matches records whose subject or object contains it,
// case-insensitively.
type Filter struct {
	Subject    string
	Predicate  string
	Object     string
	Category   string
	EntityType types.EntityType
	Text       string

	// Limit caps the result count. Zero means no limit.
	Limit int
}

// driverName is the sqlite3 driver registered with a fold(text) function.
// SQLite's own lower() folds ASCII only.
const driverName = "sqlite3_knowgrph"

var registerOnce sync.Once

func registerDriver() {
	registerOnce.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("fold", strings.ToLower, true)
			},
		})
	})
}

// Open creates an empty in-memory index.
func Open(ctx context.Context) (*Index, error) {
	registerDriver()
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	idx := &Index{db: db}
	if err := idx.createSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return idx, nil
}

// Close releases the database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) createSchema(ctx context.Context) error {
	cols := make([]string, len(types.Header))
	for i, col := range types.Header {
		cols[i] = quote(col) + " TEXT NOT NULL DEFAULT ''"
	}
	statements := []string{
		`CREATE TABLE records (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			` + strings.Join(cols, ",\n\t\t\t") + `
		)`,
		`CREATE INDEX idx_records_subject ON records(subject)`,
		`CREATE INDEX idx_records_category ON records(category)`,
	}
	for _, stmt := range statements {
		if _, err := idx.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load inserts records in order inside one transaction.
func (idx *Index) Load(ctx context.Context, records []types.Record) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(types.Header)), ", ")
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (`+columnList()+`) VALUES (`+placeholders+`)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		fields := r.Fields()
		args := make([]any, len(fields))
		for i, v := range fields {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting %s: %w", r.GraphID, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of loaded records.
func (idx *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := idx.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Query returns the records matching every set field of f, in insertion
// order.
func (idx *Index) Query(ctx context.Context, f Filter) ([]types.Record, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT ` + columnList() + ` FROM records WHERE 1=1`)

	exact := []struct {
		col, val string
	}{
		{"subject", f.Subject},
		{"predicate", f.Predicate},
		{"object", f.Object},
		{"category", f.Category},
		{"entity_type", string(f.EntityType)},
	}
	for _, e := range exact {
		if e.val == "" {
			continue
		}
		qb.WriteString(` AND ` + quote(e.col) + ` = ?`)
		args = append(args, e.val)
	}

	// instr matches literally, so % and _ in the search text carry no
	// wildcard meaning.
	if f.Text != "" {
		qb.WriteString(` AND (instr(fold(subject), ?) > 0 OR instr(fold(object), ?) > 0)`)
		needle := strings.ToLower(f.Text)
		args = append(args, needle, needle)
	}

	qb.WriteString(` ORDER BY seq`)
	if f.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	rows, err := idx.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var results []types.Record
	for rows.Next() {
		values := make([]string, len(types.Header))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		var r types.Record
		for i, col := range types.Header {
			r.SetField(col, values[i])
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

func columnList() string {
	cols := make([]string, len(types.Header))
	for i, col := range types.Header {
		cols[i] = quote(col)
	}
	return strings.Join(cols, ", ")
}

// quote wraps a column name so keywords such as action and value are
// accepted as identifiers.
func quote(col string) string {
	return `"` + col + `"`
}
