// Package jsonschema exports frameskema schemas as JSON Schema documents,
// for editors and API tooling. A batch is modeled the way the jsonsource
// loader reads it: an array of row objects with one property per column.
package jsonschema

import (
	frameskema "github.com/reoring/frameskema"
)

// Schema is a minimal JSON Schema representation used for export.
// Only the keywords a columnar schema can produce are modeled.
type Schema struct {
	// Core
	Type    string   `json:"type,omitempty"`
	Enum    []string `json:"enum,omitempty"`
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union, used for nullable columns
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// FromSchema renders a schema as the JSON Schema of the batches it accepts:
// an array of row objects. Every declared column is required — a nullable
// column is present with a null cell, not absent — and undeclared columns
// are rejected, mirroring the strict unknown-column policy. Cross-row
// constraints like uniqueness have no JSON Schema equivalent and are not
// represented.
func FromSchema(s *frameskema.Schema) *Schema {
	row := &Schema{
		Type:                 "object",
		Properties:           make(map[string]*Schema, s.Len()),
		Required:             s.Columns(),
		AdditionalProperties: false,
	}
	for _, f := range s.Fields() {
		row.Properties[f.Name] = fieldSchema(f)
	}
	return &Schema{Type: "array", Items: row}
}

func fieldSchema(f frameskema.Field) *Schema {
	var cell *Schema
	switch f.Type {
	case frameskema.Int:
		cell = &Schema{Type: "integer", Minimum: f.Min, Maximum: f.Max}
	case frameskema.Float:
		cell = &Schema{Type: "number", Minimum: f.Min, Maximum: f.Max}
	case frameskema.Bool:
		cell = &Schema{Type: "boolean"}
	case frameskema.Enum:
		cell = &Schema{Type: "string", Enum: f.Enum}
	default:
		cell = &Schema{Type: "string"}
	}
	if f.Nullable {
		return &Schema{OneOf: []*Schema{cell, {Type: "null"}}}
	}
	return cell
}
