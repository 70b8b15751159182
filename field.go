package frameskema

// Field declares the constraint for one column: its name, value domain,
// null admission, and the optional refinements (enum membership, numeric
// bounds, uniqueness). Fields are plain values; New copies them into the
// schema, so mutating a Field after construction has no effect on a built
// Schema.
type Field struct {
	Name     string
	Type     DType
	Nullable bool
	// Enum lists the permitted members. Required (and only meaningful) when
	// Type is Enum.
	Enum []string
	// Min and Max bound numeric domains inclusively. Nil means unbounded.
	Min *float64
	Max *float64
	// Unique rejects repeated non-null values within a single batch.
	Unique bool
}

// check validates the field's internal consistency. It returns nil for a
// well-formed field.
func (f Field) check() *SchemaError {
	if f.Name == "" {
		return schemaErrf("", "empty field name")
	}
	if !f.Type.valid() {
		return schemaErrf(f.Name, "unknown dtype")
	}
	switch {
	case f.Type == Enum && len(f.Enum) == 0:
		return schemaErrf(f.Name, "enum field needs at least one member")
	case f.Type != Enum && len(f.Enum) > 0:
		return schemaErrf(f.Name, "enum members on non-enum dtype %s", f.Type)
	}
	if f.Type == Enum {
		seen := make(map[string]struct{}, len(f.Enum))
		for _, m := range f.Enum {
			if _, dup := seen[m]; dup {
				return schemaErrf(f.Name, "duplicate enum member %q", m)
			}
			seen[m] = struct{}{}
		}
	}
	if (f.Min != nil || f.Max != nil) && !f.Type.numeric() {
		return schemaErrf(f.Name, "bounds on non-numeric dtype %s", f.Type)
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return schemaErrf(f.Name, "min %v greater than max %v", *f.Min, *f.Max)
	}
	return nil
}

// clone deep-copies the field so later caller mutations cannot leak into a
// built schema.
func (f Field) clone() Field {
	c := f
	if f.Enum != nil {
		c.Enum = append([]string(nil), f.Enum...)
	}
	if f.Min != nil {
		v := *f.Min
		c.Min = &v
	}
	if f.Max != nil {
		v := *f.Max
		c.Max = &v
	}
	return c
}
