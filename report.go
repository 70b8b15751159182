package frameskema

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Report is the outcome of one Validate call. Rows and Cols describe the
// batch that was checked.
type Report struct {
	Violations Violations
	Rows       int
	Cols       int
}

// OK reports whether the batch passed: true exactly when the report carries
// no violations.
func (r *Report) OK() bool { return len(r.Violations) == 0 }

// String renders the report for humans, one violation per line in report
// order.
func (r *Report) String() string {
	if r.OK() {
		return "ok"
	}
	b := &strings.Builder{}
	for i, v := range r.Violations {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(b, "%s: %s: %s", v.location(), v.Code, v.Message)
	}
	return b.String()
}

// MarshalJSON renders the report as a stable envelope. Violations is always
// an array, never null.
func (r *Report) MarshalJSON() ([]byte, error) {
	vs := r.Violations
	if vs == nil {
		vs = Violations{}
	}
	return json.Marshal(struct {
		Valid      bool       `json:"valid"`
		Rows       int        `json:"rows"`
		Cols       int        `json:"cols"`
		Violations Violations `json:"violations"`
	}{r.OK(), r.Rows, r.Cols, vs})
}
