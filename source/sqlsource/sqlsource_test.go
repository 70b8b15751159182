package sqlsource_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	frameskema "github.com/reoring/frameskema"
	"github.com/reoring/frameskema/frame"
	"github.com/reoring/frameskema/source/sqlsource"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func employeeSchema(t *testing.T) *frameskema.Schema {
	t.Helper()
	min := 1.0
	s, err := frameskema.New(
		frameskema.Field{Name: "employee_id", Type: frameskema.Int, Min: &min, Unique: true},
		frameskema.Field{Name: "name", Type: frameskema.String},
		frameskema.Field{Name: "age", Type: frameskema.Int, Nullable: true},
		frameskema.Field{Name: "is_manager", Type: frameskema.Bool},
	)
	require.NoError(t, err)
	return s
}

func TestQuery_CapturesResultSet(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		CREATE TABLE employees (
			employee_id INTEGER,
			name TEXT,
			age INTEGER,
			is_manager INTEGER
		)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
		INSERT INTO employees VALUES
			(1, 'alice', 34, 1),
			(2, 'bob', NULL, 0)`)
	require.NoError(t, err)

	s := employeeSchema(t)
	f, err := sqlsource.Query(ctx, db, s,
		`SELECT employee_id, name, age, is_manager FROM employees ORDER BY employee_id`)
	require.NoError(t, err)

	require.Equal(t, 2, f.NumRows())
	require.Equal(t, []string{"employee_id", "name", "age", "is_manager"}, f.Columns())

	// the 0/1 column lands as bool because the schema declares it boolean
	col, _ := f.Column("is_manager")
	require.Equal(t, frame.KindBool, col.Kind())
	require.Equal(t, true, col.Value(0))
	require.Equal(t, false, col.Value(1))

	col, _ = f.Column("age")
	require.True(t, col.IsNull(1))

	require.True(t, frameskema.Valid(s, f))
}

func TestQuery_ViolationsSurviveCapture(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE employees (employee_id INTEGER, name TEXT, age INTEGER, is_manager INTEGER)`)
	require.NoError(t, err)
	// duplicate id and a sub-minimum id
	_, err = db.ExecContext(ctx, `
		INSERT INTO employees VALUES
			(7, 'alice', 30, 1),
			(7, 'bob', 31, 0),
			(0, 'carol', 32, 1)`)
	require.NoError(t, err)

	s := employeeSchema(t)
	f, err := sqlsource.Query(ctx, db, s,
		`SELECT employee_id, name, age, is_manager FROM employees ORDER BY rowid`)
	require.NoError(t, err)

	rep, err := frameskema.Validate(s, f)
	require.NoError(t, err)
	require.Len(t, rep.Violations, 2)
	require.Equal(t, frameskema.CodeUniqueness, rep.Violations[0].Code)
	require.Equal(t, 1, rep.Violations[0].Row)
	require.Equal(t, frameskema.CodeTooSmall, rep.Violations[1].Code)
	require.Equal(t, 2, rep.Violations[1].Row)
}

func TestFromRows_UndeclaredColumnsPassThrough(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE t (a INTEGER, extra TEXT)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO t VALUES (1, 'x')`)
	require.NoError(t, err)

	s, err := frameskema.New(frameskema.Field{Name: "a", Type: frameskema.Int})
	require.NoError(t, err)

	rows, err := db.QueryContext(ctx, `SELECT a, extra FROM t`)
	require.NoError(t, err)
	defer rows.Close()

	f, err := sqlsource.FromRows(rows, s)
	require.NoError(t, err)

	rep, err := frameskema.Validate(s, f)
	require.NoError(t, err)
	require.Len(t, rep.Violations, 1)
	require.Equal(t, frameskema.CodeUnknownColumn, rep.Violations[0].Code)
	require.Equal(t, "extra", rep.Violations[0].Column)
}
