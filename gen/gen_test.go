package gen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/gen"
	"github.com/reoring/frameskema/source/csvsource"
)

func demoSchema(t *testing.T) *frameskema.Schema {
	t.Helper()
	one, low, high := 1.0, 18.0, 100.0
	s, err := frameskema.New(
		frameskema.Field{Name: "employee_id", Type: frameskema.Int, Min: &one, Unique: true},
		frameskema.Field{Name: "name", Type: frameskema.String},
		frameskema.Field{Name: "email", Type: frameskema.String, Unique: true},
		frameskema.Field{Name: "age", Type: frameskema.Int, Min: &low, Max: &high, Nullable: true},
		frameskema.Field{Name: "department", Type: frameskema.Enum, Enum: []string{"Engineering", "Marketing", "HR", "Finance"}},
		frameskema.Field{Name: "is_manager", Type: frameskema.Bool},
	)
	require.NoError(t, err)
	return s
}

func TestFrame_GeneratedBatchesValidateClean(t *testing.T) {
	s := demoSchema(t)

	f, err := gen.Frame(s, gen.Options{Rows: 250, Seed: 7, NullRate: 0.2})
	require.NoError(t, err)
	require.Equal(t, 250, f.NumRows())
	require.Equal(t, s.Columns(), f.Columns())

	rep, err := frameskema.Validate(s, f)
	require.NoError(t, err)
	require.True(t, rep.OK(), "generated batch must validate clean:\n%s", rep)
}

func TestFrame_SeededGenerationIsDeterministic(t *testing.T) {
	s := demoSchema(t)

	var a, b bytes.Buffer
	require.NoError(t, gen.CSV(&a, s, gen.Options{Rows: 20, Seed: 42}))
	require.NoError(t, gen.CSV(&b, s, gen.Options{Rows: 20, Seed: 42}))
	require.Equal(t, a.String(), b.String())

	var c bytes.Buffer
	require.NoError(t, gen.CSV(&c, s, gen.Options{Rows: 20, Seed: 43}))
	require.NotEqual(t, a.String(), c.String())
}

func TestFrame_UniqueRangeTooSmall(t *testing.T) {
	one, five := 1.0, 5.0
	s, err := frameskema.New(
		frameskema.Field{Name: "slot", Type: frameskema.Int, Min: &one, Max: &five, Unique: true},
	)
	require.NoError(t, err)

	_, err = gen.Frame(s, gen.Options{Rows: 10, Seed: 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "slot")

	// enum members cannot cover more unique rows than there are members
	s2, err := frameskema.New(
		frameskema.Field{Name: "kind", Type: frameskema.Enum, Enum: []string{"a", "b"}, Unique: true},
	)
	require.NoError(t, err)
	_, err = gen.Frame(s2, gen.Options{Rows: 3, Seed: 1})
	require.Error(t, err)
}

func TestCSV_RoundTripsThroughLoader(t *testing.T) {
	s := demoSchema(t)

	var buf bytes.Buffer
	require.NoError(t, gen.CSV(&buf, s, gen.Options{Rows: 50, Seed: 11, NullRate: 0.3}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 51) // header + rows

	f, err := csvsource.Read(&buf, s)
	require.NoError(t, err)
	require.Equal(t, 50, f.NumRows())
	require.True(t, frameskema.Valid(s, f), "regenerated batch must validate clean")
}

func TestFrame_NullRateRespectsNullability(t *testing.T) {
	s := demoSchema(t)

	f, err := gen.Frame(s, gen.Options{Rows: 100, Seed: 3, NullRate: 1.0})
	require.NoError(t, err)

	// age is the only nullable column: all null at rate 1.0
	col, _ := f.Column("age")
	for i := 0; i < col.Len(); i++ {
		require.True(t, col.IsNull(i))
	}
	// non-nullable columns never carry nulls
	col, _ = f.Column("name")
	for i := 0; i < col.Len(); i++ {
		require.False(t, col.IsNull(i))
	}
}
