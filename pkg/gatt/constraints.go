package gatt

import (
	"math"
	"time"

	"github.com/gattkit/gattkit-go/pkg/medfloat"
)

// ValueKind is the expected runtime shape of a decoded value.
type ValueKind uint8

const (
	// ValueAny disables the type check.
	ValueAny ValueKind = iota
	ValueFloat
	ValueInt
	ValueUint
	ValueBool
	ValueString
	ValueBytes
	ValueTime
	ValueStruct
)

// String returns the value kind name.
func (v ValueKind) String() string {
	names := []string{"any", "float", "int", "uint", "bool", "string", "bytes", "time", "struct"}
	if int(v) < len(names) {
		return names[v]
	}
	return "any"
}

// Constraints is the declarative validation contract each concrete
// characteristic owns. The validation engine reads only this value;
// nothing is derived from the characteristic type at runtime. The zero
// value declares no constraints.
type Constraints struct {
	// ExactLength is the required buffer length in bytes. 0 = unset.
	ExactLength int

	// MinLength/MaxLength bound variable layouts. 0 = unset.
	MinLength int
	MaxLength int

	// Variable permits buffers longer than ExactLength (trailing
	// optional fields).
	Variable bool

	// MinValue/MaxValue bound decoded numeric values. Nil = unset.
	MinValue *float64
	MaxValue *float64

	// Kind is the expected runtime type of the decoded value.
	Kind ValueKind
}

// Float64 returns a pointer to v, for constraint literals.
func Float64(v float64) *float64 {
	return &v
}

// ValidateInput checks a raw buffer against c before any decode logic
// runs: too short fails with KindInsufficientData, a fixed-length
// buffer that is too long fails with KindLengthMismatch.
func ValidateInput(raw []byte, c Constraints) error {
	need := c.MinLength
	if c.ExactLength > 0 {
		need = c.ExactLength
	}
	if len(raw) < need {
		return Errorf(KindInsufficientData, "%d bytes, need %d", len(raw), need)
	}
	if c.ExactLength > 0 && len(raw) > c.ExactLength && !c.Variable {
		return Errorf(KindLengthMismatch, "%d bytes, expected exactly %d", len(raw), c.ExactLength)
	}
	if c.MaxLength > 0 && len(raw) > c.MaxLength {
		return Errorf(KindLengthMismatch, "%d bytes, at most %d allowed", len(raw), c.MaxLength)
	}
	return nil
}

// ValidateOutput checks a decoded (or to-be-encoded) value against c:
// wrong runtime shape fails with KindTypeMismatch, numeric bounds fail
// with KindValueRange.
func ValidateOutput(value any, c Constraints) error {
	if value == nil {
		return nil
	}
	num, isNum := numericValue(value)
	if c.Kind != ValueAny {
		if err := checkKind(value, num, isNum, c.Kind); err != nil {
			return err
		}
	}
	if isNum && !math.IsNaN(num) && !math.IsInf(num, 0) {
		if c.MinValue != nil && num < *c.MinValue {
			return Errorf(KindValueRange, "%v below minimum %v", num, *c.MinValue)
		}
		if c.MaxValue != nil && num > *c.MaxValue {
			return Errorf(KindValueRange, "%v above maximum %v", num, *c.MaxValue)
		}
	}
	return nil
}

func checkKind(value any, num float64, isNum bool, kind ValueKind) error {
	ok := false
	switch kind {
	case ValueFloat:
		switch value.(type) {
		case float32, float64:
			ok = true
		}
	case ValueInt:
		switch value.(type) {
		case int, int8, int16, int32, int64:
			ok = true
		}
	case ValueUint:
		switch value.(type) {
		case uint, uint8, uint16, uint32, uint64:
			ok = true
		}
	case ValueBool:
		_, ok = value.(bool)
	case ValueString:
		_, ok = value.(string)
	case ValueBytes:
		_, ok = value.([]byte)
	case ValueTime:
		switch value.(type) {
		case time.Time, medfloat.DateTime:
			ok = true
		}
	case ValueStruct:
		// Anything that is not a plain scalar passes as a struct.
		ok = !isNum
		switch value.(type) {
		case bool, string, []byte:
			ok = false
		}
	}
	if !ok {
		return Errorf(KindTypeMismatch, "%T is not a %s value", value, kind)
	}
	return nil
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
