package jsonsource_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/frame"
	"github.com/reoring/frameskema/source/jsonsource"
)

func productSchema(t *testing.T) *frameskema.Schema {
	t.Helper()
	min := 0.0
	s, err := frameskema.New(
		frameskema.Field{Name: "sku", Type: frameskema.String, Unique: true},
		frameskema.Field{Name: "price", Type: frameskema.Float, Min: &min},
		frameskema.Field{Name: "stock", Type: frameskema.Int, Nullable: true},
		frameskema.Field{Name: "active", Type: frameskema.Bool},
	)
	require.NoError(t, err)
	return s
}

func TestParse_ResolvesNumbersAgainstDomain(t *testing.T) {
	s := productSchema(t)
	data := []byte(`[
		{"sku": "A-1", "price": 9, "stock": 3, "active": true},
		{"sku": "B-2", "price": 10.5, "stock": null, "active": false}
	]`)

	f, err := jsonsource.Parse(data, s)
	require.NoError(t, err)
	require.Equal(t, 2, f.NumRows())
	require.Equal(t, []string{"sku", "price", "stock", "active"}, f.Columns())

	// the integral price literal still lands in a float column
	col, _ := f.Column("price")
	require.Equal(t, frame.KindFloat64, col.Kind())
	require.Equal(t, 9.0, col.Value(0))

	col, _ = f.Column("stock")
	require.Equal(t, frame.KindInt64, col.Kind())
	require.True(t, col.IsNull(1))

	require.True(t, frameskema.Valid(s, f))
}

func TestParse_AbsentKeysBecomeNulls(t *testing.T) {
	s := productSchema(t)
	data := []byte(`[
		{"sku": "A-1", "price": 1.0, "active": true},
		{"sku": "B-2", "price": 2.0, "stock": 7, "active": true}
	]`)

	f, err := jsonsource.Parse(data, s)
	require.NoError(t, err)
	col, _ := f.Column("stock")
	require.True(t, col.IsNull(0))
	require.Equal(t, int64(7), col.Value(1))
}

func TestParse_UndeclaredKeysSortedAfterDeclared(t *testing.T) {
	s := productSchema(t)
	data := []byte(`[
		{"sku": "A-1", "price": 1.0, "stock": 1, "active": true, "zeta": 1, "alpha": "x"}
	]`)

	f, err := jsonsource.Parse(data, s)
	require.NoError(t, err)
	require.Equal(t, []string{"sku", "price", "stock", "active", "alpha", "zeta"}, f.Columns())
}

func TestParse_MalformedCellsBecomeViolations(t *testing.T) {
	s := productSchema(t)
	data := []byte(`[
		{"sku": "A-1", "price": "free", "stock": 1, "active": true},
		{"sku": "B-2", "price": 2.5, "stock": 2, "active": "yes"}
	]`)

	f, err := jsonsource.Parse(data, s)
	require.NoError(t, err)

	rep, err := frameskema.Validate(s, f)
	require.NoError(t, err)
	require.Len(t, rep.Violations, 2)
	require.Equal(t, "price", rep.Violations[0].Column)
	require.Equal(t, frameskema.CodeInvalidType, rep.Violations[0].Code)
	require.Equal(t, 0, rep.Violations[0].Row)
	require.Equal(t, "active", rep.Violations[1].Column)
	require.Equal(t, 1, rep.Violations[1].Row)
}

func TestParse_ColumnMapDocument(t *testing.T) {
	s := productSchema(t)
	data := []byte(`{
		"price": [1.5, 20, 3.25],
		"sku": ["A-1", "B-2", "C-3"],
		"stock": [5, null, 7],
		"active": [true, false, true],
		"warehouse": ["x", "y", "z"]
	}`)

	f, err := jsonsource.Parse(data, s)
	require.NoError(t, err)
	require.Equal(t, 3, f.NumRows())
	// declared columns first in schema order, extras after
	require.Equal(t, []string{"sku", "price", "stock", "active", "warehouse"}, f.Columns())

	col, _ := f.Column("price")
	require.Equal(t, frame.KindFloat64, col.Kind())
	require.Equal(t, 20.0, col.Value(1))

	col, _ = f.Column("stock")
	require.True(t, col.IsNull(1))

	rep, err := frameskema.Validate(s, f, frameskema.Opt{Unknown: frameskema.UnknownIgnore})
	require.NoError(t, err)
	require.True(t, rep.OK(), "column-map batch should validate clean:\n%s", rep)
}

func TestParse_ColumnMapRaggedColumnsFail(t *testing.T) {
	data := []byte(`{"a": [1, 2, 3], "b": ["x"]}`)
	_, err := jsonsource.Parse(data, nil)
	require.Error(t, err)
}

func TestParse_StructuralErrors(t *testing.T) {
	// an object whose values are not arrays is not a column map
	_, err := jsonsource.Parse([]byte(`{"not": "an array"}`), nil)
	require.Error(t, err)

	_, err = jsonsource.Parse([]byte(`"scalar"`), nil)
	require.Error(t, err)

	f, err := jsonsource.Parse([]byte(`[]`), nil)
	require.NoError(t, err)
	require.Equal(t, 0, f.NumRows())
	require.Equal(t, 0, f.NumCols())
}
