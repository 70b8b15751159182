package frame

// Kind identifies the storage representation of a column.
type Kind uint8

const (
	KindInt64 Kind = iota
	KindFloat64
	KindString
	KindBool
	// KindAny marks a column without a uniform storage type; each cell carries
	// its own runtime type and is inspected individually by consumers.
	KindAny
)

// String returns the lower-case kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Column is a named, row-indexed sequence of optional scalar values. Implementations
// are immutable after construction and safe for concurrent reads.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	// IsNull reports whether the value at row i is null.
	IsNull(i int) bool
	// Value returns the boxed value at row i, or nil when the cell is null.
	// Typed columns always box to their Kind's Go type (int64, float64, string, bool).
	Value(i int) any
}

type int64Col struct {
	name  string
	data  []int64
	valid []bool // nil means every cell is set
}

func (c *int64Col) Name() string { return c.name }
func (c *int64Col) Kind() Kind   { return KindInt64 }
func (c *int64Col) Len() int     { return len(c.data) }
func (c *int64Col) IsNull(i int) bool {
	return c.valid != nil && !c.valid[i]
}
func (c *int64Col) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	return c.data[i]
}

type float64Col struct {
	name  string
	data  []float64
	valid []bool
}

func (c *float64Col) Name() string { return c.name }
func (c *float64Col) Kind() Kind   { return KindFloat64 }
func (c *float64Col) Len() int     { return len(c.data) }
func (c *float64Col) IsNull(i int) bool {
	return c.valid != nil && !c.valid[i]
}
func (c *float64Col) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	return c.data[i]
}

type stringCol struct {
	name  string
	data  []string
	valid []bool
}

func (c *stringCol) Name() string { return c.name }
func (c *stringCol) Kind() Kind   { return KindString }
func (c *stringCol) Len() int     { return len(c.data) }
func (c *stringCol) IsNull(i int) bool {
	return c.valid != nil && !c.valid[i]
}
func (c *stringCol) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	return c.data[i]
}

type boolCol struct {
	name  string
	data  []bool
	valid []bool
}

func (c *boolCol) Name() string { return c.name }
func (c *boolCol) Kind() Kind   { return KindBool }
func (c *boolCol) Len() int     { return len(c.data) }
func (c *boolCol) IsNull(i int) bool {
	return c.valid != nil && !c.valid[i]
}
func (c *boolCol) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	return c.data[i]
}

type anyCol struct {
	name string
	data []any // nil cell means null
}

func (c *anyCol) Name() string      { return c.name }
func (c *anyCol) Kind() Kind        { return KindAny }
func (c *anyCol) Len() int          { return len(c.data) }
func (c *anyCol) IsNull(i int) bool { return c.data[i] == nil }
func (c *anyCol) Value(i int) any   { return c.data[i] }

// Ints builds a dense int64 column.
func Ints(name string, vs ...int64) Column {
	return &int64Col{name: name, data: append([]int64(nil), vs...)}
}

// IntsN builds a nullable int64 column; nil entries become nulls.
func IntsN(name string, vs ...*int64) Column {
	data := make([]int64, len(vs))
	valid := make([]bool, len(vs))
	for i, v := range vs {
		if v != nil {
			data[i] = *v
			valid[i] = true
		}
	}
	return &int64Col{name: name, data: data, valid: valid}
}

// Floats builds a dense float64 column.
func Floats(name string, vs ...float64) Column {
	return &float64Col{name: name, data: append([]float64(nil), vs...)}
}

// FloatsN builds a nullable float64 column; nil entries become nulls.
func FloatsN(name string, vs ...*float64) Column {
	data := make([]float64, len(vs))
	valid := make([]bool, len(vs))
	for i, v := range vs {
		if v != nil {
			data[i] = *v
			valid[i] = true
		}
	}
	return &float64Col{name: name, data: data, valid: valid}
}

// Strings builds a dense string column.
func Strings(name string, vs ...string) Column {
	return &stringCol{name: name, data: append([]string(nil), vs...)}
}

// StringsN builds a nullable string column; nil entries become nulls.
func StringsN(name string, vs ...*string) Column {
	data := make([]string, len(vs))
	valid := make([]bool, len(vs))
	for i, v := range vs {
		if v != nil {
			data[i] = *v
			valid[i] = true
		}
	}
	return &stringCol{name: name, data: data, valid: valid}
}

// Bools builds a dense bool column.
func Bools(name string, vs ...bool) Column {
	return &boolCol{name: name, data: append([]bool(nil), vs...)}
}

// BoolsN builds a nullable bool column; nil entries become nulls.
func BoolsN(name string, vs ...*bool) Column {
	data := make([]bool, len(vs))
	valid := make([]bool, len(vs))
	for i, v := range vs {
		if v != nil {
			data[i] = *v
			valid[i] = true
		}
	}
	return &boolCol{name: name, data: data, valid: valid}
}

// Anys builds a column without a uniform storage type. nil entries become nulls;
// integral and floating values are normalized to int64/float64 so consumers see
// a predictable set of runtime types.
func Anys(name string, vs ...any) Column {
	data := make([]any, len(vs))
	for i, v := range vs {
		data[i] = normalizeScalar(v)
	}
	return &anyCol{name: name, data: data}
}

func normalizeScalar(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// FromCells builds the narrowest column that can hold the given cells. Cells
// are normalized like Anys. When every non-null cell shares one scalar type
// the column is stored typed; mixed or exotic cells fall back to an any
// column so each offending cell keeps its runtime type.
func FromCells(name string, cells []any) Column {
	norm := make([]any, len(cells))
	var ints, floats, strs, bools, others, nonNull int
	for i, v := range cells {
		nv := normalizeScalar(v)
		norm[i] = nv
		switch nv.(type) {
		case nil:
			continue
		case int64:
			ints++
		case float64:
			floats++
		case string:
			strs++
		case bool:
			bools++
		default:
			others++
		}
		nonNull++
	}
	if nonNull == 0 || others > 0 {
		return &anyCol{name: name, data: norm}
	}
	switch nonNull {
	case ints:
		data := make([]int64, len(norm))
		valid := make([]bool, len(norm))
		for i, v := range norm {
			if x, ok := v.(int64); ok {
				data[i] = x
				valid[i] = true
			}
		}
		return &int64Col{name: name, data: data, valid: valid}
	case floats:
		data := make([]float64, len(norm))
		valid := make([]bool, len(norm))
		for i, v := range norm {
			if x, ok := v.(float64); ok {
				data[i] = x
				valid[i] = true
			}
		}
		return &float64Col{name: name, data: data, valid: valid}
	case strs:
		data := make([]string, len(norm))
		valid := make([]bool, len(norm))
		for i, v := range norm {
			if x, ok := v.(string); ok {
				data[i] = x
				valid[i] = true
			}
		}
		return &stringCol{name: name, data: data, valid: valid}
	case bools:
		data := make([]bool, len(norm))
		valid := make([]bool, len(norm))
		for i, v := range norm {
			if x, ok := v.(bool); ok {
				data[i] = x
				valid[i] = true
			}
		}
		return &boolCol{name: name, data: data, valid: valid}
	}
	return &anyCol{name: name, data: norm}
}
