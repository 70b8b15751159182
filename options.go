package frameskema

import "time"

// UnknownPolicy selects how batch columns absent from the schema are treated.
type UnknownPolicy int

const (
	// UnknownStrict reports every undeclared column as a violation. This is
	// the default: silently passing stray columns hides upstream drift.
	UnknownStrict UnknownPolicy = iota
	// UnknownIgnore skips undeclared columns without reporting them.
	UnknownIgnore
)

// Opt tunes a single Validate call. Pass at most one; when several are given
// the last wins. The zero value reproduces the defaults: strict unknown
// columns, sequential evaluation, exhaustive reports.
type Opt struct {
	Unknown UnknownPolicy
	// Workers is the number of goroutines evaluating columns concurrently.
	// Values below 2 keep evaluation on the calling goroutine. The report is
	// identical either way.
	Workers int
	// FailFast stops after the first column, in canonical order, that yields
	// violations. That column is still checked exhaustively. FailFast implies
	// sequential evaluation.
	FailFast bool
	// Recorder, when set, observes the outcome of the call.
	Recorder Recorder
}

// Recorder receives the outcome of each Validate call. Implementations must
// be safe for concurrent use; the metrics package provides a Prometheus-backed
// one.
type Recorder interface {
	RecordValidation(r *Report, elapsed time.Duration)
}
