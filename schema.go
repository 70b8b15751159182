package frameskema

// compiledField is a field together with the lookup structures the evaluator
// needs. Compilation happens once at schema construction so per-row checks
// stay allocation-free.
type compiledField struct {
	Field
	enumSet map[string]struct{} // non-nil only for Enum fields
}

func compileField(f Field) compiledField {
	cf := compiledField{Field: f.clone()}
	if f.Type == Enum {
		cf.enumSet = make(map[string]struct{}, len(f.Enum))
		for _, m := range f.Enum {
			cf.enumSet[m] = struct{}{}
		}
	}
	return cf
}

// Schema is an ordered set of field constraints with unique names. It is
// immutable after construction and safe for concurrent use.
type Schema struct {
	fields []compiledField
	index  map[string]int
}

// New builds a schema from the given fields. It fails fast with a
// *SchemaError on the first inconsistency: an empty field list, an empty or
// duplicate name, or a malformed per-field constraint. Field order is
// preserved and defines the canonical report order.
func New(fields ...Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, schemaErrf("", "schema needs at least one field")
	}
	s := &Schema{
		fields: make([]compiledField, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if err := f.check(); err != nil {
			return nil, err
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, schemaErrf(f.Name, "duplicate field name")
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, compileField(f))
	}
	return s, nil
}

// MustNew is New that panics on error. Intended for static schemas whose
// validity is established by tests.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Columns returns the declared column names in declaration order.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.fields))
	for i, cf := range s.fields {
		out[i] = cf.Name
	}
	return out
}

// Lookup returns the constraint declared for name. The returned Field shares
// its Enum slice with the schema and must be treated as read-only.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i].Field, true
}

// Fields returns a copy of the declared constraints in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, cf := range s.fields {
		out[i] = cf.Field
	}
	return out
}
