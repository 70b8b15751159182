package frame_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/frameskema/frame"
)

func TestNew_BasicShape(t *testing.T) {
	f, err := frame.New(
		frame.Ints("id", 1, 2, 3),
		frame.Strings("name", "a", "b", "c"),
	)
	require.NoError(t, err)
	require.Equal(t, 3, f.NumRows())
	require.Equal(t, 2, f.NumCols())
	require.Equal(t, []string{"id", "name"}, f.Columns())
	require.True(t, f.Has("id"))
	require.False(t, f.Has("salary"))

	col, ok := f.Column("id")
	require.True(t, ok)
	require.Equal(t, frame.KindInt64, col.Kind())
	require.Equal(t, int64(2), col.Value(1))
}

func TestNew_RejectsRaggedAndDuplicate(t *testing.T) {
	_, err := frame.New(
		frame.Ints("id", 1, 2),
		frame.Strings("name", "only one"),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "name")

	_, err = frame.New(
		frame.Ints("id", 1),
		frame.Strings("id", "x"),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate")

	_, err = frame.New(frame.Ints("id", 1), nil)
	require.Error(t, err)
}

func TestNew_ZeroColumnsAndZeroRows(t *testing.T) {
	f, err := frame.New()
	require.NoError(t, err)
	require.Equal(t, 0, f.NumRows())
	require.Equal(t, 0, f.NumCols())

	f, err = frame.New(frame.Ints("id"))
	require.NoError(t, err)
	require.Equal(t, 0, f.NumRows())
	require.Equal(t, 1, f.NumCols())
}

func TestNullableColumns(t *testing.T) {
	age := int64(42)
	col := frame.IntsN("age", &age, nil, &age)
	require.Equal(t, 3, col.Len())
	require.False(t, col.IsNull(0))
	require.True(t, col.IsNull(1))
	require.Nil(t, col.Value(1))
	require.Equal(t, int64(42), col.Value(2))

	name := "x"
	scol := frame.StringsN("name", nil, &name)
	require.True(t, scol.IsNull(0))
	require.Equal(t, "x", scol.Value(1))

	ok := true
	bcol := frame.BoolsN("flag", &ok, nil)
	require.Equal(t, frame.KindBool, bcol.Kind())
	require.True(t, bcol.IsNull(1))

	r := 1.5
	fcol := frame.FloatsN("ratio", &r, nil)
	require.Equal(t, frame.KindFloat64, fcol.Kind())
	require.Equal(t, 1.5, fcol.Value(0))
}

func TestDenseColumnsHaveNoNulls(t *testing.T) {
	col := frame.Strings("s", "a", "b")
	for i := 0; i < col.Len(); i++ {
		require.False(t, col.IsNull(i))
	}
}

func TestAnys_NormalizesScalars(t *testing.T) {
	col := frame.Anys("v", int(7), int32(8), uint16(9), float32(1.5), "s", true, nil)
	require.Equal(t, frame.KindAny, col.Kind())
	require.Equal(t, int64(7), col.Value(0))
	require.Equal(t, int64(8), col.Value(1))
	require.Equal(t, int64(9), col.Value(2))
	require.Equal(t, float64(1.5), col.Value(3))
	require.Equal(t, "s", col.Value(4))
	require.Equal(t, true, col.Value(5))
	require.True(t, col.IsNull(6))
}

func TestFromCells_PicksNarrowestKind(t *testing.T) {
	col := frame.FromCells("n", []any{int64(1), nil, int(3)})
	require.Equal(t, frame.KindInt64, col.Kind())
	require.True(t, col.IsNull(1))
	require.Equal(t, int64(3), col.Value(2))

	col = frame.FromCells("f", []any{1.5, nil, float32(2.5)})
	require.Equal(t, frame.KindFloat64, col.Kind())

	col = frame.FromCells("s", []any{"a", "b"})
	require.Equal(t, frame.KindString, col.Kind())

	col = frame.FromCells("b", []any{true, nil})
	require.Equal(t, frame.KindBool, col.Kind())

	// mixed scalar types must not be widened away
	col = frame.FromCells("m", []any{int64(1), "x"})
	require.Equal(t, frame.KindAny, col.Kind())

	// all-null columns carry no kind information
	col = frame.FromCells("z", []any{nil, nil})
	require.Equal(t, frame.KindAny, col.Kind())
	require.True(t, col.IsNull(0))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "int64", frame.KindInt64.String())
	require.Equal(t, "float64", frame.KindFloat64.String())
	require.Equal(t, "string", frame.KindString.String())
	require.Equal(t, "bool", frame.KindBool.String())
	require.Equal(t, "any", frame.KindAny.String())
}
