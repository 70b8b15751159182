package frameskema

import (
	"fmt"

	"github.com/reoring/frameskema/frame"
)

// DType is the value domain of a schema field. It names the scalar type a
// column's non-null cells must carry, independent of how the batch stores
// them.
type DType uint8

const (
	Int DType = iota
	Float
	String
	Bool
	// Enum is a closed set of string members declared on the field.
	Enum
)

var dtypeNames = [...]string{"int", "float", "string", "bool", "enum"}

func (t DType) String() string {
	if int(t) < len(dtypeNames) {
		return dtypeNames[t]
	}
	return fmt.Sprintf("dtype(%d)", uint8(t))
}

func (t DType) valid() bool {
	return int(t) < len(dtypeNames)
}

// numeric reports whether the domain supports ordering bounds.
func (t DType) numeric() bool {
	return t == Int || t == Float
}

// baseKind is the column kind a dense column of this domain would carry.
func (t DType) baseKind() frame.Kind {
	switch t {
	case Int:
		return frame.KindInt64
	case Float:
		return frame.KindFloat64
	case Bool:
		return frame.KindBool
	default:
		// String and Enum share the string kind.
		return frame.KindString
	}
}

// admitsKind reports whether a whole column of the given kind can satisfy the
// domain without per-value inspection. Float admits int64 columns because
// every int64 cell is a valid float value.
func (t DType) admitsKind(k frame.Kind) bool {
	if t == Float && k == frame.KindInt64 {
		return true
	}
	return k == t.baseKind()
}

// ParseDType maps a textual domain name to its DType. It accepts the names
// produced by DType.String.
func ParseDType(s string) (DType, error) {
	for i, name := range dtypeNames {
		if s == name {
			return DType(i), nil
		}
	}
	return 0, fmt.Errorf("frameskema: unknown dtype %q", s)
}
