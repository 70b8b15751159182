// Package sqlsource captures database/sql result sets as frames. Driver
// values are normalized so the same schema validates identically across
// engines: []byte cells become strings, and text or 0/1 cells under declared
// numeric or boolean columns are parsed toward the declared domain.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/frame"
)

// Query runs the statement and captures the full result set.
func Query(ctx context.Context, db *sql.DB, s *frameskema.Schema, query string, args ...any) (*frame.Frame, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: query: %w", err)
	}
	defer rows.Close()
	return FromRows(rows, s)
}

// FromRows drains an already-open result set into a frame. The caller keeps
// ownership of rows and must close it.
func FromRows(rows *sql.Rows, s *frameskema.Schema) (*frame.Frame, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlsource: columns: %w", err)
	}

	cells := make([][]any, len(names))
	scan := make([]any, len(names))
	for i := range scan {
		scan[i] = new(any)
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("sqlsource: scan: %w", err)
		}
		for i := range scan {
			cells[i] = append(cells[i], *(scan[i].(*any)))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlsource: rows: %w", err)
	}

	cols := make([]frame.Column, len(names))
	for i, name := range names {
		var f frameskema.Field
		declared := false
		if s != nil {
			f, declared = s.Lookup(name)
		}
		col := make([]any, len(cells[i]))
		for ri, v := range cells[i] {
			col[ri] = normalizeDriverValue(v, f.Type, declared)
		}
		cols[i] = frame.FromCells(name, col)
	}
	return frame.New(cols...)
}

// normalizeDriverValue maps one driver value onto a frame scalar. Undeclared
// columns only get the []byte-to-string conversion.
func normalizeDriverValue(v any, t frameskema.DType, declared bool) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if !declared {
		return v
	}
	switch t {
	case frameskema.Int:
		if s, ok := v.(string); ok {
			if x, err := strconv.ParseInt(s, 10, 64); err == nil {
				return x
			}
		}
	case frameskema.Float:
		if s, ok := v.(string); ok {
			if x, err := strconv.ParseFloat(s, 64); err == nil {
				return x
			}
		}
	case frameskema.Bool:
		switch x := v.(type) {
		case int64:
			// engines without a native boolean store 0/1
			if x == 0 {
				return false
			}
			if x == 1 {
				return true
			}
		case string:
			if b, err := strconv.ParseBool(x); err == nil {
				return b
			}
		}
	}
	return v
}
