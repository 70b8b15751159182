package frameskema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/frameskema/frame"
	"github.com/reoring/frameskema/i18n"
)

// evalColumn checks every row of col against the compiled constraint and
// returns the violations in row order. It inspects all rows even after
// failures: reports are exhaustive, not fail-fast.
func evalColumn(cf compiledField, col frame.Column) Violations {
	if col.Kind() != frame.KindAny && !cf.Type.admitsKind(col.Kind()) {
		// The whole column carries the wrong kind. No per-value switch is
		// needed, and uniqueness is not meaningful over mistyped cells.
		return wholeColumnMismatch(cf, col)
	}
	out := valueViolations(cf, col)
	if cf.Unique {
		out = mergeByRow(out, duplicateViolations(cf, col))
	}
	return out
}

// valueViolations runs the per-row chain: null admission first, then type,
// then the domain refinements (enum membership, numeric bounds). At most one
// of null/type/refinement fires per cell.
func valueViolations(cf compiledField, col frame.Column) Violations {
	var out Violations
	typed := col.Kind() != frame.KindAny
	for i, n := 0, col.Len(); i < n; i++ {
		if col.IsNull(i) {
			if !cf.Nullable {
				out = append(out, nullNotAllowed(cf.Name, i))
			}
			continue
		}
		if typed {
			// The column kind already matches the domain, so the runtime
			// type check is settled for every cell.
			out = appendRefinements(out, cf, i, col.Value(i))
			continue
		}
		out = appendValueCheck(out, cf, i, col.Value(i))
	}
	return out
}

// appendRefinements checks a cell whose type is known to match the domain.
func appendRefinements(out Violations, cf compiledField, row int, v any) Violations {
	switch cf.Type {
	case Int, Float:
		return appendBounds(out, cf, row, asFloat(v), v)
	case Enum:
		s := v.(string)
		if _, ok := cf.enumSet[s]; !ok {
			out = append(out, notInEnum(cf.Name, row, s, cf.Enum))
		}
	}
	return out
}

// appendValueCheck checks a cell from a mixed column: runtime type first,
// then the refinements.
func appendValueCheck(out Violations, cf compiledField, row int, v any) Violations {
	switch cf.Type {
	case Int:
		x, ok := v.(int64)
		if !ok {
			return append(out, typeMismatch(cf.Name, row, cf.Type, v))
		}
		return appendBounds(out, cf, row, float64(x), v)
	case Float:
		x, ok := asFloatOK(v)
		if !ok {
			return append(out, typeMismatch(cf.Name, row, cf.Type, v))
		}
		return appendBounds(out, cf, row, x, v)
	case String:
		if _, ok := v.(string); !ok {
			return append(out, typeMismatch(cf.Name, row, cf.Type, v))
		}
	case Bool:
		if _, ok := v.(bool); !ok {
			return append(out, typeMismatch(cf.Name, row, cf.Type, v))
		}
	case Enum:
		s, ok := v.(string)
		if !ok {
			return append(out, typeMismatch(cf.Name, row, cf.Type, v))
		}
		if _, member := cf.enumSet[s]; !member {
			out = append(out, notInEnum(cf.Name, row, s, cf.Enum))
		}
	}
	return out
}

func appendBounds(out Violations, cf compiledField, row int, x float64, v any) Violations {
	if cf.Min != nil && x < *cf.Min {
		return append(out, belowMin(cf.Name, row, *cf.Min, v))
	}
	if cf.Max != nil && x > *cf.Max {
		return append(out, aboveMax(cf.Name, row, *cf.Max, v))
	}
	return out
}

func wholeColumnMismatch(cf compiledField, col frame.Column) Violations {
	var out Violations
	observed := col.Kind().String()
	for i, n := 0, col.Len(); i < n; i++ {
		if col.IsNull(i) {
			// Null admission is independent of the column's kind.
			if !cf.Nullable {
				out = append(out, nullNotAllowed(cf.Name, i))
			}
			continue
		}
		out = append(out, typeMismatchKind(cf.Name, i, cf.Type, observed, col.Value(i)))
	}
	return out
}

// duplicateViolations flags every repeat of a non-null value after its first
// occurrence. Null cells never count as duplicates, and mistyped cells in
// mixed columns are left to the value pass.
func duplicateViolations(cf compiledField, col frame.Column) Violations {
	var out Violations
	firstSeen := make(map[any]int)
	for i, n := 0, col.Len(); i < n; i++ {
		if col.IsNull(i) {
			continue
		}
		k, ok := uniqueKey(cf.Type, col.Value(i))
		if !ok {
			continue
		}
		if first, dup := firstSeen[k]; dup {
			out = append(out, duplicateValue(cf.Name, i, first, col.Value(i)))
			continue
		}
		firstSeen[k] = i
	}
	return out
}

// uniqueKey normalizes a cell into a comparable map key. Int cells under a
// Float domain collapse onto their float value so 2 and 2.0 collide.
func uniqueKey(t DType, v any) (any, bool) {
	switch t {
	case Int:
		x, ok := v.(int64)
		return x, ok
	case Float:
		return asFloatOK(v)
	case Bool:
		x, ok := v.(bool)
		return x, ok
	default:
		x, ok := v.(string)
		return x, ok
	}
}

// mergeByRow interleaves two row-ordered violation lists, keeping a before b
// on equal rows.
func mergeByRow(a, b Violations) Violations {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := make(Violations, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if b[j].Row < a[i].Row {
			out = append(out, b[j])
			j++
			continue
		}
		out = append(out, a[i])
		i++
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func asFloat(v any) float64 {
	x, _ := asFloatOK(v)
	return x
}

func asFloatOK(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	}
	return 0, false
}

// runtimeKind names the runtime type of a cell for diagnostics.
func runtimeKind(v any) string {
	switch v.(type) {
	case int64:
		return "int64"
	case float64:
		return "float64"
	case string:
		return "string"
	case bool:
		return "bool"
	}
	return fmt.Sprintf("%T", v)
}

// renderCell produces the textual form of a cell for Violation.Observed.
func renderCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// maxMembersShown caps how many enum members the human message lists.
const maxMembersShown = 6

func renderMembers(members []string) string {
	shown := members
	if len(shown) > maxMembersShown {
		shown = shown[:maxMembersShown]
	}
	parts := make([]string, len(shown))
	for i, m := range shown {
		parts[i] = strconv.Quote(m)
	}
	s := strings.Join(parts, ", ")
	if len(members) > maxMembersShown {
		s += fmt.Sprintf(", ... (%d total)", len(members))
	}
	return s
}

// Violation constructors. Messages go through i18n so SetLanguage applies to
// engine output as well.

func typeMismatch(col string, row int, expected DType, v any) Violation {
	return typeMismatchKind(col, row, expected, runtimeKind(v), v)
}

func typeMismatchKind(col string, row int, expected DType, observed string, v any) Violation {
	data := map[string]string{"expected": expected.String(), "observed": observed}
	return Violation{
		Column:   col,
		Row:      row,
		Code:     CodeInvalidType,
		Message:  i18n.T(CodeInvalidType, data),
		Observed: renderCell(v),
		Params:   map[string]any{"expected": expected.String(), "observed": observed},
	}
}

func nullNotAllowed(col string, row int) Violation {
	return Violation{
		Column:  col,
		Row:     row,
		Code:    CodeNullNotAllowed,
		Message: i18n.T(CodeNullNotAllowed, nil),
	}
}

func notInEnum(col string, row int, got string, members []string) Violation {
	return Violation{
		Column:   col,
		Row:      row,
		Code:     CodeInvalidEnum,
		Message:  i18n.T(CodeInvalidEnum, map[string]string{"allowed": renderMembers(members)}),
		Observed: got,
		Params:   map[string]any{"allowed": members},
	}
}

func belowMin(col string, row int, min float64, v any) Violation {
	return Violation{
		Column:   col,
		Row:      row,
		Code:     CodeTooSmall,
		Message:  i18n.T(CodeTooSmall, map[string]string{"min": formatBound(min)}),
		Observed: renderCell(v),
		Params:   map[string]any{"min": min, "got": v},
	}
}

func aboveMax(col string, row int, max float64, v any) Violation {
	return Violation{
		Column:   col,
		Row:      row,
		Code:     CodeTooBig,
		Message:  i18n.T(CodeTooBig, map[string]string{"max": formatBound(max)}),
		Observed: renderCell(v),
		Params:   map[string]any{"max": max, "got": v},
	}
}

func duplicateValue(col string, row, first int, v any) Violation {
	return Violation{
		Column:   col,
		Row:      row,
		Code:     CodeUniqueness,
		Message:  i18n.T(CodeUniqueness, map[string]string{"first": strconv.Itoa(first)}),
		Observed: renderCell(v),
		Params:   map[string]any{"first_row": first},
	}
}
