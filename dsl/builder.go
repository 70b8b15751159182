// Package dsl provides a fluent builder for frameskema schemas.
//
// Typical usage:
//
//	s := dsl.Schema().
//	    Field("employee_id", frameskema.Int).Min(1).Unique().
//	    Field("department", frameskema.Enum, "Engineering", "Marketing").
//	    Field("age", frameskema.Int).Min(18).Max(100).Nullable().
//	    MustBuild()
package dsl

import (
	frameskema "github.com/reoring/frameskema"
)

type schemaBuilder struct {
	fields []frameskema.Field
}

// fieldStep configures the most recently declared field and forwards
// builder-level calls so declarations chain without intermediate variables.
type fieldStep struct {
	b *schemaBuilder
	i int
}

// Schema creates a new schema builder. Declaration order becomes the
// schema's canonical column order.
func Schema() *schemaBuilder {
	return &schemaBuilder{}
}

// Field appends a field with the given name and value domain. Enum members
// are passed variadically and are only valid for the Enum domain; Build
// rejects them anywhere else.
func (b *schemaBuilder) Field(name string, t frameskema.DType, members ...string) *fieldStep {
	b.fields = append(b.fields, frameskema.Field{Name: name, Type: t, Enum: members})
	return &fieldStep{b: b, i: len(b.fields) - 1}
}

func (f *fieldStep) cur() *frameskema.Field { return &f.b.fields[f.i] }

// Nullable admits null cells in the current field's column.
func (f *fieldStep) Nullable() *fieldStep {
	f.cur().Nullable = true
	return f
}

// Unique rejects repeated non-null values within a batch.
func (f *fieldStep) Unique() *fieldStep {
	f.cur().Unique = true
	return f
}

// Min bounds the current numeric field from below (inclusive).
func (f *fieldStep) Min(v float64) *fieldStep {
	x := v
	f.cur().Min = &x
	return f
}

// Max bounds the current numeric field from above (inclusive).
func (f *fieldStep) Max(v float64) *fieldStep {
	x := v
	f.cur().Max = &x
	return f
}

func (f *fieldStep) Field(name string, t frameskema.DType, members ...string) *fieldStep {
	return f.b.Field(name, t, members...)
}
func (f *fieldStep) Build() (*frameskema.Schema, error) { return f.b.Build() }
func (f *fieldStep) MustBuild() *frameskema.Schema      { return f.b.MustBuild() }

// Build validates the accumulated fields and returns a Schema. All
// construction invariants are enforced here, so a malformed declaration
// fails before any batch is checked.
func (b *schemaBuilder) Build() (*frameskema.Schema, error) {
	return frameskema.New(b.fields...)
}

// MustBuild is like Build but panics on error.
func (b *schemaBuilder) MustBuild() *frameskema.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
