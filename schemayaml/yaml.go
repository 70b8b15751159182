// Package schemayaml reads and writes frameskema schemas as YAML documents,
// so dataset contracts can live next to the data they describe.
//
// A document looks like:
//
//	name: employees
//	fields:
//	  - name: employee_id
//	    dtype: int
//	    min: 1
//	    unique: true
//	  - name: department
//	    dtype: enum
//	    members: [Engineering, Marketing, HR, Finance]
//	  - name: age
//	    dtype: int
//	    nullable: true
//	    min: 18
//	    max: 100
package schemayaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	frameskema "github.com/reoring/frameskema"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a schema.
type Document struct {
	Name   string      `yaml:"name,omitempty"`
	Fields []FieldSpec `yaml:"fields"`
}

// FieldSpec is the on-disk form of a single field constraint.
type FieldSpec struct {
	Name     string   `yaml:"name"`
	DType    string   `yaml:"dtype"`
	Nullable bool     `yaml:"nullable,omitempty"`
	Members  []string `yaml:"members,omitempty"`
	Min      *float64 `yaml:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty"`
	Unique   bool     `yaml:"unique,omitempty"`
}

// Parse decodes a single schema document. Unknown YAML keys are rejected so
// typos surface as errors instead of silently weakening the contract.
func Parse(data []byte) (*frameskema.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schemayaml: decode: %w", err)
	}
	return FromDocument(doc)
}

// Load reads a schema document from a file.
func Load(path string) (*frameskema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemayaml: read %s: %w", path, err)
	}
	return Parse(data)
}

// ParseNamed scans a multi-document bundle and builds the schema whose name
// matches. It returns an error when no document carries the name.
func ParseNamed(data []byte, name string) (*frameskema.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	for {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("schemayaml: decode: %w", err)
		}
		if doc.Name != name {
			continue
		}
		return FromDocument(doc)
	}
	return nil, fmt.Errorf("schemayaml: schema %q not found in bundle", name)
}

// FromDocument builds a schema from a decoded document. Construction
// invariants are enforced by frameskema.New, so a malformed document fails
// with the same *SchemaError a handwritten schema would.
func FromDocument(doc Document) (*frameskema.Schema, error) {
	fields := make([]frameskema.Field, 0, len(doc.Fields))
	for _, fs := range doc.Fields {
		dt, err := frameskema.ParseDType(fs.DType)
		if err != nil {
			return nil, fmt.Errorf("schemayaml: field %q: %w", fs.Name, err)
		}
		fields = append(fields, frameskema.Field{
			Name:     fs.Name,
			Type:     dt,
			Nullable: fs.Nullable,
			Enum:     fs.Members,
			Min:      fs.Min,
			Max:      fs.Max,
			Unique:   fs.Unique,
		})
	}
	return frameskema.New(fields...)
}

// ToDocument renders a schema back into its document form.
func ToDocument(name string, s *frameskema.Schema) Document {
	doc := Document{Name: name}
	for _, f := range s.Fields() {
		doc.Fields = append(doc.Fields, FieldSpec{
			Name:     f.Name,
			DType:    f.Type.String(),
			Nullable: f.Nullable,
			Members:  f.Enum,
			Min:      f.Min,
			Max:      f.Max,
			Unique:   f.Unique,
		})
	}
	return doc
}

// Marshal renders a schema as YAML.
func Marshal(name string, s *frameskema.Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocument(name, s)); err != nil {
		return nil, fmt.Errorf("schemayaml: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("schemayaml: encode: %w", err)
	}
	return buf.Bytes(), nil
}
