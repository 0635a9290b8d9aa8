package gatt

import (
	"errors"
	"fmt"

	"github.com/gattkit/gattkit-go/pkg/bits"
	"github.com/gattkit/gattkit-go/pkg/codec"
	"github.com/gattkit/gattkit-go/pkg/medfloat"
	"github.com/gattkit/gattkit-go/pkg/scaled"
)

// ErrorKind classifies a decode or encode failure.
type ErrorKind uint8

const (
	// KindNone means no failure.
	KindNone ErrorKind = iota

	// KindInsufficientData means the buffer is shorter than required.
	KindInsufficientData

	// KindLengthMismatch means a fixed-length buffer is too long.
	KindLengthMismatch

	// KindValueRange means a numeric value is outside declared bounds.
	KindValueRange

	// KindTypeMismatch means a value has the wrong runtime shape.
	KindTypeMismatch

	// KindEnumValue means an integer is not a valid enumeration member.
	KindEnumValue

	// KindFieldFailure means a named sub-field of a composite failed.
	KindFieldFailure

	// KindMissingDependency means a required other characteristic was
	// unavailable during decode.
	KindMissingDependency

	// KindUUIDResolution means the identifier resolved to nothing.
	KindUUIDResolution

	// KindCollision means a custom registration collided with an
	// existing identifier without override.
	KindCollision

	// KindSpecialFloatFormat means medical float bits mapped to neither
	// a finite value nor a documented sentinel.
	KindSpecialFloatFormat

	// KindDependencyCycle means declared dependencies form a cycle.
	KindDependencyCycle

	// KindInternal means a programmer error surfaced during decode.
	KindInternal
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInsufficientData:
		return "insufficient_data"
	case KindLengthMismatch:
		return "length_mismatch"
	case KindValueRange:
		return "value_range"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindEnumValue:
		return "enum_value"
	case KindFieldFailure:
		return "field_failure"
	case KindMissingDependency:
		return "missing_dependency"
	case KindUUIDResolution:
		return "uuid_resolution"
	case KindCollision:
		return "collision"
	case KindSpecialFloatFormat:
		return "special_float_format"
	case KindDependencyCycle:
		return "dependency_cycle"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// FieldError records the failure of one named sub-field of a composite
// characteristic. Offset is the byte position within the raw value, or
// -1 when unknown.
type FieldError struct {
	Field  string
	Offset int
	Err    error
}

// Error implements the error interface.
func (f FieldError) Error() string {
	if f.Offset >= 0 {
		return fmt.Sprintf("field %s at offset %d: %v", f.Field, f.Offset, f.Err)
	}
	return fmt.Sprintf("field %s: %v", f.Field, f.Err)
}

// Unwrap returns the underlying failure.
func (f FieldError) Unwrap() error {
	return f.Err
}

// CodecError is the structured failure every decode or encode error
// reduces to: a kind for simple callers, a message, and for composite
// characteristics an ordered field error list.
type CodecError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	err     error
}

// Errorf builds a CodecError of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *CodecError {
	return &CodecError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds a CodecError carrying err, classified automatically
// unless kind is KindNone.
func WrapError(kind ErrorKind, err error) *CodecError {
	if kind == KindNone {
		kind = Classify(err)
	}
	return &CodecError{Kind: kind, Message: err.Error(), err: err}
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error, if any.
func (e *CodecError) Unwrap() error {
	return e.err
}

// WithField appends a field error and returns e.
func (e *CodecError) WithField(field string, offset int, err error) *CodecError {
	e.Fields = append(e.Fields, FieldError{Field: field, Offset: offset, Err: err})
	return e
}

// Classify maps any error onto the taxonomy. CodecErrors report their
// own kind; sentinel errors from the codec packages map to their
// documented kinds; everything else is KindInternal.
func Classify(err error) ErrorKind {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	var fe FieldError
	if errors.As(err, &fe) {
		return KindFieldFailure
	}
	switch {
	case errors.Is(err, codec.ErrInsufficientData):
		return KindInsufficientData
	case errors.Is(err, codec.ErrLengthMismatch):
		return KindLengthMismatch
	case errors.Is(err, codec.ErrValueRange),
		errors.Is(err, medfloat.ErrValueRange):
		return KindValueRange
	case errors.Is(err, codec.ErrMalformedUTF8):
		return KindTypeMismatch
	case errors.Is(err, medfloat.ErrSpecialFormat):
		return KindSpecialFloatFormat
	case errors.Is(err, bits.ErrFieldRange),
		errors.Is(err, codec.ErrWidth),
		errors.Is(err, scaled.ErrWidth):
		return KindInternal
	default:
		return KindInternal
	}
}
