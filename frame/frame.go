// Package frame holds tabular batches in a columnar layout: named, typed
// columns of equal length with explicit null markers. A Frame is immutable
// after construction and safe to share across concurrent readers; it carries
// no validation logic of its own.
package frame

import "fmt"

// Frame is an ordered collection of equally sized columns.
type Frame struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New assembles a Frame from columns, preserving their order. It fails when a
// column name repeats or when column lengths differ; a frame with zero columns
// is valid and has zero rows.
func New(cols ...Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("frame: nil column")
		}
		if _, dup := f.index[c.Name()]; dup {
			return nil, fmt.Errorf("frame: duplicate column %q", c.Name())
		}
		if len(f.cols) == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("frame: column %q has %d rows, want %d", c.Name(), c.Len(), f.rows)
		}
		f.index[c.Name()] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// MustNew is like New but panics on error. Intended for fixtures and examples.
func MustNew(cols ...Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows returns the uniform row count shared by every column.
func (f *Frame) NumRows() int { return f.rows }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// Columns returns the column names in frame order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name()
	}
	return out
}

// Column returns the named column, or false when absent.
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Has reports whether the frame contains the named column.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}
