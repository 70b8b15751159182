// Package jsonsource loads JSON documents into frames. Two document shapes
// are accepted: an array of row objects, and a column map binding each name
// to an array of cells. Numbers are decoded without premature float
// conversion and resolved against the declared value domain, so integer
// cells survive as int64 and malformed cells surface as violations rather
// than loader errors.
package jsonsource

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	j "github.com/goccy/go-json"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/frame"
)

// Load reads a JSON file.
func Load(path string, s *frameskema.Schema) (*frame.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jsonsource: read %s: %w", path, err)
	}
	return Parse(data, s)
}

// Parse decodes a JSON document.
func Parse(data []byte, s *frameskema.Schema) (*frame.Frame, error) {
	if isObject(data) {
		return parseColumns(data, s)
	}
	return parseRows(data, s)
}

// Read decodes a JSON document from r into a frame. A top-level object is
// read as a column map {"col": [cells...]}, a top-level array as row
// objects. Declared columns appear first in schema order, undeclared names
// follow sorted; a key absent from a row object becomes a null cell.
func Read(r io.Reader, s *frameskema.Schema) (*frame.Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("jsonsource: read: %w", err)
	}
	return Parse(data, s)
}

// isObject reports whether the document's first token opens an object.
func isObject(data []byte) bool {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

func parseRows(data []byte, s *frameskema.Schema) (*frame.Frame, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("jsonsource: decode: %w", err)
	}

	present := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			present[k] = true
		}
	}

	cols := make([]frame.Column, 0, len(present))
	for _, name := range columnOrder(s, present) {
		ft := declaredType(s, name)
		cells := make([]any, len(records))
		for i, rec := range records {
			v, ok := rec[name]
			if !ok || v == nil {
				continue
			}
			cells[i] = mapScalar(v, ft)
		}
		cols = append(cols, frame.FromCells(name, cells))
	}
	return frame.New(cols...)
}

func parseColumns(data []byte, s *frameskema.Schema) (*frame.Frame, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string][]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("jsonsource: decode: %w", err)
	}

	present := make(map[string]bool, len(doc))
	for k := range doc {
		present[k] = true
	}

	cols := make([]frame.Column, 0, len(doc))
	for _, name := range columnOrder(s, present) {
		ft := declaredType(s, name)
		vals := doc[name]
		cells := make([]any, len(vals))
		for i, v := range vals {
			if v == nil {
				continue
			}
			cells[i] = mapScalar(v, ft)
		}
		cols = append(cols, frame.FromCells(name, cells))
	}
	// Ragged columns are a structural fault and fail here.
	return frame.New(cols...)
}

// columnOrder lists the observed columns: declared ones first in schema
// order, then the rest sorted by name.
func columnOrder(s *frameskema.Schema, present map[string]bool) []string {
	var order []string
	if s != nil {
		for _, name := range s.Columns() {
			if present[name] {
				order = append(order, name)
				delete(present, name)
			}
		}
	}
	extras := make([]string, 0, len(present))
	for k := range present {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	return append(order, extras...)
}

func declaredType(s *frameskema.Schema, name string) frameskema.DType {
	if s != nil {
		if f, ok := s.Lookup(name); ok {
			return f.Type
		}
	}
	return 0
}

// mapScalar resolves decoded JSON values into frame scalars. Strings, bools
// and nested containers pass through; numbers resolve against the domain.
func mapScalar(v any, t frameskema.DType) any {
	if n, ok := v.(j.Number); ok {
		return resolveNumber(n, t)
	}
	return v
}

func resolveNumber(n j.Number, t frameskema.DType) any {
	lit := string(n)
	if t == frameskema.Float {
		if f, err := strconv.ParseFloat(lit, 64); err == nil {
			return f
		}
	}
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return f
	}
	// pathological literal, kept as text for the validator to flag
	return lit
}
