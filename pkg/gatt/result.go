package gatt

import (
	"errors"
	"fmt"

	"github.com/gattkit/gattkit-go/pkg/btuuid"
)

// Result is the structured outcome of one characteristic parse. A
// failed parse still carries the raw bytes, any partial value a
// composite decoder produced, and the ordered field error list.
type Result struct {
	// Characteristic is the definition that produced this result.
	Characteristic Characteristic

	// UUID is the characteristic identity, kept even when resolution
	// itself failed and Characteristic is nil.
	UUID btuuid.UUID

	// Value is the decoded domain value; nil when absent.
	Value any

	// Raw is a copy of the input bytes.
	Raw []byte

	// OK reports whether the parse succeeded.
	OK bool

	// Kind classifies the failure when OK is false.
	Kind ErrorKind

	// Message is the top-level failure message.
	Message string

	// FieldErrors lists which sub-fields failed, in order.
	FieldErrors []FieldError

	// Trace holds the ordered parse steps when tracing was enabled.
	Trace []string
}

func newResult(ch Characteristic, raw []byte) *Result {
	res := &Result{Characteristic: ch}
	if ch != nil {
		res.UUID = ch.UUID()
	}
	if raw != nil {
		res.Raw = make([]byte, len(raw))
		copy(res.Raw, raw)
	}
	return res
}

func (r *Result) fail(err error) *Result {
	r.OK = false
	r.Kind = Classify(err)
	r.Message = err.Error()
	var ce *CodecError
	if errors.As(err, &ce) && len(ce.Fields) > 0 {
		r.FieldErrors = append(r.FieldErrors, ce.Fields...)
	}
	var fe FieldError
	if errors.As(err, &fe) {
		r.FieldErrors = append(r.FieldErrors, fe)
	}
	return r
}

// Err returns the failure as an error, or nil for a successful result.
func (r *Result) Err() error {
	if r.OK {
		return nil
	}
	return Errorf(r.Kind, "%s", r.Message)
}

// Float returns the value as float64 when it is numeric.
func (r *Result) Float() (float64, bool) {
	if !r.OK {
		return 0, false
	}
	return numericValue(r.Value)
}

// String summarizes the result for logs and shells.
func (r *Result) String() string {
	if r.OK {
		return fmt.Sprintf("%s = %v", r.UUID, r.Value)
	}
	return fmt.Sprintf("%s failed: %s: %s", r.UUID, r.Kind, r.Message)
}
