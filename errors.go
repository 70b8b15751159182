package frameskema

import (
	"errors"
	"fmt"
	"strings"
)

// Violation codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeNullNotAllowed = "null_not_allowed"
	CodeInvalidEnum    = "invalid_enum"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeUniqueness     = "uniqueness"
	CodeMissingColumn  = "missing_column"
	CodeUnknownColumn  = "unknown_column"
)

// Violation records a single failure of a batch against its schema. It is a
// value object: the engine creates it and never mutates it afterwards.
type Violation struct {
	Column  string `json:"column"`
	Row     int    `json:"row"` // zero for column-level codes (missing/unknown column)
	Code    string `json:"code"`
	Message string `json:"message"`
	// Observed is the offending cell rendered as text. Empty when the cell was
	// null or the violation is column-level.
	Observed string `json:"observed,omitempty"`
	// Params carries structured parameters (e.g., {"min":18, "got":17}) for
	// i18n and observability.
	Params map[string]any `json:"params,omitempty"`
}

// cellLevel reports whether the code locates a single cell rather than a
// whole column.
func cellLevel(code string) bool {
	return code != CodeMissingColumn && code != CodeUnknownColumn
}

func (v Violation) location() string {
	if cellLevel(v.Code) {
		return fmt.Sprintf("%s[%d]", v.Column, v.Row)
	}
	return v.Column
}

// Violations is a collection of violations that implements error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := vs[i]
		// e.g. invalid_enum at department[2]
		fmt.Fprintf(b, "%s at %s", it.Code, it.location())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendViolations appends violations to the destination, initializing the
// slice when needed.
func AppendViolations(dst Violations, more ...Violation) Violations {
	if dst == nil {
		dst = Violations{}
	}
	dst = append(dst, more...)
	return dst
}

// AsViolations extracts Violations from an error using errors.As internally.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

// SchemaError reports an internally inconsistent schema definition: duplicate
// or empty column names, an empty field list, or a malformed per-field
// constraint. It is a construction-time failure and is never produced by
// Validate.
type SchemaError struct {
	Field  string // offending field name; empty for schema-level faults
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "frameskema: invalid schema: " + e.Reason
	}
	return fmt.Sprintf("frameskema: invalid schema: field %q: %s", e.Field, e.Reason)
}

func schemaErrf(field, format string, args ...any) *SchemaError {
	return &SchemaError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Argument errors at the Validate boundary, distinct from both SchemaError
// and Violations. A nil schema or a nil batch is a caller bug, not a data
// defect, so it is surfaced as an ordinary error instead of a report.
var (
	ErrNilSchema = errors.New("frameskema: nil schema")
	ErrNilFrame  = errors.New("frameskema: nil frame")
)
