package csvsource_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/frame"
	"github.com/reoring/frameskema/source/csvsource"
)

func employeeSchema(t *testing.T) *frameskema.Schema {
	t.Helper()
	min := 1.0
	s, err := frameskema.New(
		frameskema.Field{Name: "employee_id", Type: frameskema.Int, Min: &min, Unique: true},
		frameskema.Field{Name: "name", Type: frameskema.String},
		frameskema.Field{Name: "age", Type: frameskema.Int, Nullable: true},
		frameskema.Field{Name: "salary", Type: frameskema.Float},
		frameskema.Field{Name: "is_manager", Type: frameskema.Bool},
	)
	require.NoError(t, err)
	return s
}

func TestRead_CoercesTowardSchema(t *testing.T) {
	s := employeeSchema(t)
	in := strings.Join([]string{
		"employee_id,name,age,salary,is_manager",
		"1,alice,34,95000.50,true",
		"2,bob,,72000,false",
	}, "\n")

	f, err := csvsource.Read(strings.NewReader(in), s)
	require.NoError(t, err)
	require.Equal(t, 2, f.NumRows())

	col, _ := f.Column("employee_id")
	require.Equal(t, frame.KindInt64, col.Kind())
	require.Equal(t, int64(2), col.Value(1))

	col, _ = f.Column("age")
	require.True(t, col.IsNull(1))
	require.Equal(t, int64(34), col.Value(0))

	col, _ = f.Column("salary")
	require.Equal(t, frame.KindFloat64, col.Kind())
	require.Equal(t, 95000.50, col.Value(0))

	col, _ = f.Column("is_manager")
	require.Equal(t, frame.KindBool, col.Kind())
	require.Equal(t, true, col.Value(0))

	require.True(t, frameskema.Valid(s, f))
}

func TestRead_KeepsUnparseableCellsForValidation(t *testing.T) {
	s := employeeSchema(t)
	in := strings.Join([]string{
		"employee_id,name,age,salary,is_manager",
		"1,alice,thirty,95000,true",
		"2,bob,40,72000,false",
	}, "\n")

	f, err := csvsource.Read(strings.NewReader(in), s)
	require.NoError(t, err)

	col, _ := f.Column("age")
	require.Equal(t, frame.KindAny, col.Kind())
	require.Equal(t, "thirty", col.Value(0))

	rep, err := frameskema.Validate(s, f)
	require.NoError(t, err)
	require.Len(t, rep.Violations, 1)
	require.Equal(t, frameskema.CodeInvalidType, rep.Violations[0].Code)
	require.Equal(t, "age", rep.Violations[0].Column)
	require.Equal(t, 0, rep.Violations[0].Row)
	require.Equal(t, "thirty", rep.Violations[0].Observed)
}

func TestRead_NullValuesAndDelimiter(t *testing.T) {
	s := employeeSchema(t)
	in := strings.Join([]string{
		"employee_id;name;age;salary;is_manager",
		"1;alice;NA;95000;true",
	}, "\n")

	f, err := csvsource.Read(strings.NewReader(in), s, csvsource.Options{
		Comma:      ';',
		NullValues: []string{"NA", "null"},
	})
	require.NoError(t, err)

	col, _ := f.Column("age")
	require.True(t, col.IsNull(0))
}

func TestRead_UndeclaredColumnsStayText(t *testing.T) {
	s := employeeSchema(t)
	in := strings.Join([]string{
		"employee_id,name,age,salary,is_manager,badge",
		"1,alice,34,95000,true,42",
	}, "\n")

	f, err := csvsource.Read(strings.NewReader(in), s)
	require.NoError(t, err)

	col, ok := f.Column("badge")
	require.True(t, ok)
	require.Equal(t, frame.KindString, col.Kind())

	rep, err := frameskema.Validate(s, f)
	require.NoError(t, err)
	require.Len(t, rep.Violations, 1)
	require.Equal(t, frameskema.CodeUnknownColumn, rep.Violations[0].Code)
	require.Equal(t, "badge", rep.Violations[0].Column)
}

func TestRead_StructuralErrors(t *testing.T) {
	s := employeeSchema(t)

	// ragged record
	_, err := csvsource.Read(strings.NewReader("a,b\n1,2,3\n"), s)
	require.Error(t, err)

	// empty input
	_, err = csvsource.Read(strings.NewReader(""), s)
	require.Error(t, err)

	// a nil schema loads everything as text
	f, err := csvsource.Read(strings.NewReader("x,y\n1,true\n"), nil)
	require.NoError(t, err)
	col, _ := f.Column("x")
	require.Equal(t, frame.KindString, col.Kind())
}
