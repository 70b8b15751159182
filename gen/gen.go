// Package gen produces schema-conforming random batches for demos, load
// fixtures and tests. Generated frames always validate clean against the
// schema they were generated from.
package gen

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/frame"
)

// Options tunes generation. Pass at most one; when several are given the
// last wins.
type Options struct {
	// Rows is the number of rows to generate; 100 when zero.
	Rows int
	// Seed makes output reproducible; zero seeds from entropy.
	Seed uint64
	// NullRate is the probability of a null cell in nullable columns, 0..1.
	NullRate float64
}

// Frame generates a batch that satisfies the schema.
func Frame(s *frameskema.Schema, opts ...Options) (*frame.Frame, error) {
	if s == nil {
		return nil, fmt.Errorf("gen: nil schema")
	}
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	rows := opt.Rows
	if rows <= 0 {
		rows = 100
	}
	fk := gofakeit.New(opt.Seed)

	cols := make([]frame.Column, 0, s.Len())
	for _, fld := range s.Fields() {
		cells, err := columnCells(fk, fld, rows, opt.NullRate)
		if err != nil {
			return nil, err
		}
		cols = append(cols, frame.FromCells(fld.Name, cells))
	}
	return frame.New(cols...)
}

// CSV generates a batch and renders it as CSV with a header row.
func CSV(w io.Writer, s *frameskema.Schema, opts ...Options) error {
	f, err := Frame(s, opts...)
	if err != nil {
		return err
	}
	return WriteCSV(w, f)
}

// WriteCSV renders a frame as CSV. Nulls become empty cells, which the
// csvsource loader reads back as nulls.
func WriteCSV(w io.Writer, f *frame.Frame) error {
	return StreamCSV(w, f, nil)
}

// StreamCSV is WriteCSV with a per-row callback, for wiring progress bars
// over large batches. onRow may be nil.
func StreamCSV(w io.Writer, f *frame.Frame, onRow func()) error {
	cw := csv.NewWriter(w)
	names := f.Columns()
	if err := cw.Write(names); err != nil {
		return fmt.Errorf("gen: write header: %w", err)
	}
	cols := make([]frame.Column, len(names))
	for i, name := range names {
		cols[i], _ = f.Column(name)
	}
	rec := make([]string, len(names))
	for ri := 0; ri < f.NumRows(); ri++ {
		for ci, col := range cols {
			if col.IsNull(ri) {
				rec[ci] = ""
				continue
			}
			rec[ci] = renderCSV(col.Value(ri))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("gen: write row %d: %w", ri, err)
		}
		if onRow != nil {
			onRow()
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderCSV(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func columnCells(fk *gofakeit.Faker, fld frameskema.Field, rows int, nullRate float64) ([]any, error) {
	cells := make([]any, rows)
	switch fld.Type {
	case frameskema.Int:
		lo, hi := int64(0), int64(1_000_000)
		if fld.Min != nil {
			lo = int64(math.Ceil(*fld.Min))
		}
		if fld.Max != nil {
			hi = int64(math.Floor(*fld.Max))
		}
		if fld.Unique && hi-lo+1 < int64(rows) {
			return nil, fmt.Errorf("gen: field %q: unique range [%d,%d] cannot cover %d rows", fld.Name, lo, hi, rows)
		}
		for i := range cells {
			if isNull(fk, fld, nullRate) {
				continue
			}
			if fld.Unique {
				cells[i] = lo + int64(i)
			} else {
				cells[i] = lo + int64(fk.Number(0, int(hi-lo)))
			}
		}
	case frameskema.Float:
		lo, hi := 0.0, 1_000_000.0
		if fld.Min != nil {
			lo = *fld.Min
		}
		if fld.Max != nil {
			hi = *fld.Max
		}
		for i := range cells {
			if isNull(fk, fld, nullRate) {
				continue
			}
			if fld.Unique {
				v := lo + float64(i)
				if fld.Max != nil && v > hi {
					return nil, fmt.Errorf("gen: field %q: unique range [%g,%g] cannot cover %d rows", fld.Name, lo, hi, rows)
				}
				cells[i] = v
			} else {
				cells[i] = fk.Float64Range(lo, hi)
			}
		}
	case frameskema.String:
		for i := range cells {
			if isNull(fk, fld, nullRate) {
				continue
			}
			v := stringFor(fk, fld.Name)
			if fld.Unique {
				v = fmt.Sprintf("%s-%06d", v, i)
			}
			cells[i] = v
		}
	case frameskema.Bool:
		if fld.Unique && rows > 2 {
			return nil, fmt.Errorf("gen: field %q: a unique bool column cannot cover %d rows", fld.Name, rows)
		}
		for i := range cells {
			if isNull(fk, fld, nullRate) {
				continue
			}
			if fld.Unique {
				cells[i] = i == 0
			} else {
				cells[i] = fk.Bool()
			}
		}
	case frameskema.Enum:
		if fld.Unique {
			if rows > len(fld.Enum) {
				return nil, fmt.Errorf("gen: field %q: %d enum members cannot cover %d unique rows", fld.Name, len(fld.Enum), rows)
			}
			perm := append([]string(nil), fld.Enum...)
			fk.ShuffleStrings(perm)
			for i := range cells {
				if isNull(fk, fld, nullRate) {
					continue
				}
				cells[i] = perm[i]
			}
		} else {
			for i := range cells {
				if isNull(fk, fld, nullRate) {
					continue
				}
				cells[i] = fk.RandomString(fld.Enum)
			}
		}
	}
	return cells, nil
}

func isNull(fk *gofakeit.Faker, fld frameskema.Field, rate float64) bool {
	return fld.Nullable && rate > 0 && fk.Float64Range(0, 1) < rate
}

// stringFor picks a generator from the column name so demo data reads like
// data instead of noise.
func stringFor(fk *gofakeit.Faker, name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "email"):
		return fk.Email()
	case strings.Contains(n, "name"):
		return fk.Name()
	case strings.Contains(n, "city"):
		return fk.City()
	case strings.Contains(n, "phone"):
		return fk.Phone()
	case strings.Contains(n, "date"):
		return fk.Date().Format("2006-01-02")
	default:
		return fk.Word()
	}
}
