package frameskema

import (
	"sort"
	"sync"
	"time"

	"github.com/reoring/frameskema/frame"
	"github.com/reoring/frameskema/i18n"
)

// Validate checks the batch against the schema and returns a report. The
// report is exhaustive (every declared column, every row) and its order is
// canonical: violations appear by schema declaration position, rows
// ascending, with undeclared columns appended last in name order. Validation
// never mutates the batch, so repeated calls yield identical reports.
//
// A non-nil error is returned only for unusable arguments; data defects are
// always reported as violations inside the report, never as an error.
func Validate(s *Schema, f *frame.Frame, opts ...Opt) (*Report, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	if f == nil {
		return nil, ErrNilFrame
	}
	var opt Opt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}

	var start time.Time
	if opt.Recorder != nil {
		start = time.Now()
	}
	rep := run(s, f, opt)
	if opt.Recorder != nil {
		opt.Recorder.RecordValidation(rep, time.Since(start))
	}
	return rep, nil
}

// Check is Validate collapsed into the error idiom: nil for a valid batch,
// the report's Violations otherwise.
func Check(s *Schema, f *frame.Frame, opts ...Opt) error {
	rep, err := Validate(s, f, opts...)
	if err != nil {
		return err
	}
	if rep.OK() {
		return nil
	}
	return rep.Violations
}

// Valid reports whether the batch satisfies the schema.
func Valid(s *Schema, f *frame.Frame, opts ...Opt) bool {
	rep, err := Validate(s, f, opts...)
	return err == nil && rep.OK()
}

func run(s *Schema, f *frame.Frame, opt Opt) *Report {
	slots := make([]Violations, len(s.fields))
	switch {
	case opt.FailFast:
		runFailFast(s, f, slots)
	case opt.Workers > 1:
		runParallel(s, f, slots, opt.Workers)
	default:
		runSequential(s, f, slots)
	}

	vs := Violations{}
	for _, col := range slots {
		vs = append(vs, col...)
	}
	if opt.Unknown == UnknownStrict && (!opt.FailFast || len(vs) == 0) {
		unknown := collectUnknown(s, f)
		if opt.FailFast && len(unknown) > 1 {
			unknown = unknown[:1]
		}
		vs = append(vs, unknown...)
	}
	return &Report{Violations: vs, Rows: f.NumRows(), Cols: f.NumCols()}
}

// evalSchemaColumn produces the violations owned by one schema position:
// a single missing_column when the batch lacks the column, the full cell
// evaluation otherwise.
func evalSchemaColumn(cf compiledField, f *frame.Frame) Violations {
	col, ok := f.Column(cf.Name)
	if !ok {
		return Violations{missingColumn(cf.Name)}
	}
	return evalColumn(cf, col)
}

func runSequential(s *Schema, f *frame.Frame, slots []Violations) {
	for i, cf := range s.fields {
		slots[i] = evalSchemaColumn(cf, f)
	}
}

func runFailFast(s *Schema, f *frame.Frame, slots []Violations) {
	for i, cf := range s.fields {
		slots[i] = evalSchemaColumn(cf, f)
		if len(slots[i]) > 0 {
			return
		}
	}
}

// runParallel fans schema positions out to a fixed worker pool. Each worker
// writes only its own slot, and slots are concatenated in declaration order
// afterwards, so the report matches the sequential path exactly.
func runParallel(s *Schema, f *frame.Frame, slots []Violations, workers int) {
	if workers > len(s.fields) {
		workers = len(s.fields)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				slots[i] = evalSchemaColumn(s.fields[i], f)
			}
		}()
	}
	for i := range s.fields {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// collectUnknown lists batch columns the schema does not declare, sorted by
// name for deterministic output.
func collectUnknown(s *Schema, f *frame.Frame) Violations {
	var names []string
	for _, name := range f.Columns() {
		if _, declared := s.index[name]; !declared {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make(Violations, 0, len(names))
	for _, name := range names {
		out = append(out, unknownColumn(name))
	}
	return out
}

func missingColumn(col string) Violation {
	return Violation{
		Column:  col,
		Code:    CodeMissingColumn,
		Message: i18n.T(CodeMissingColumn, nil),
	}
}

func unknownColumn(col string) Violation {
	return Violation{
		Column:  col,
		Code:    CodeUnknownColumn,
		Message: i18n.T(CodeUnknownColumn, nil),
	}
}
