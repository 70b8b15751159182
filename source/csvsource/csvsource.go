// Package csvsource loads CSV data into frames, coercing cell text toward
// the declared value domains. Cells that do not parse are kept verbatim so
// validation can point at the exact offending row instead of the loader
// failing wholesale.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/frame"
)

// Options tunes CSV reading. Pass at most one; when several are given the
// last wins. The zero value reads comma-separated input with a header row
// and treats empty cells as nulls.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune
	// NullValues lists cell texts treated as null in addition to "".
	NullValues []string
}

// Load reads a CSV file into a frame.
func Load(path string, s *frameskema.Schema, opts ...Options) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvsource: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, s, opts...)
}

// Read reads CSV records from r into a frame. The first record is the
// header. Columns declared in the schema are coerced toward their domain; a
// nil schema loads every column as text. Structural faults (ragged records,
// duplicate header names) are loader errors, not violations.
func Read(r io.Reader, s *frameskema.Schema, opts ...Options) (*frame.Frame, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}

	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csvsource: empty input, header row required")
		}
		return nil, fmt.Errorf("csvsource: header: %w", err)
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("csvsource: %w", err)
		}
		records = append(records, rec)
	}

	nulls := make(map[string]struct{}, len(opt.NullValues)+1)
	nulls[""] = struct{}{}
	for _, nv := range opt.NullValues {
		nulls[nv] = struct{}{}
	}

	cols := make([]frame.Column, 0, len(header))
	for ci, name := range header {
		var ft frameskema.DType
		declared := false
		if s != nil {
			if f, ok := s.Lookup(name); ok {
				ft = f.Type
				declared = true
			}
		}
		cells := make([]any, len(records))
		for ri, rec := range records {
			raw := rec[ci]
			if _, isNull := nulls[raw]; isNull {
				continue
			}
			if declared {
				cells[ri] = coerce(raw, ft)
			} else {
				cells[ri] = raw
			}
		}
		cols = append(cols, frame.FromCells(name, cells))
	}
	return frame.New(cols...)
}

// coerce parses raw text toward the declared domain, keeping the text
// verbatim when it does not parse.
func coerce(raw string, t frameskema.DType) any {
	switch t {
	case frameskema.Int:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	case frameskema.Float:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	case frameskema.Bool:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return raw
}
