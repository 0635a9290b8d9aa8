package gatt

import (
	"errors"

	"github.com/gattkit/gattkit-go/pkg/btuuid"
)

// Dependencies declares, per characteristic type, which other
// characteristics' decoded values must (or may) be present in the
// context during decode. The declaration is static; the batch decoder
// uses it to order work.
type Dependencies struct {
	// Required characteristics; decode fails with
	// KindMissingDependency when one is absent.
	Required []btuuid.UUID

	// Optional characteristics; used when present, never required.
	Optional []btuuid.UUID
}

// Empty reports whether no dependencies are declared.
func (d Dependencies) Empty() bool {
	return len(d.Required) == 0 && len(d.Optional) == 0
}

// Characteristic is the contract every concrete decoder implements.
// Implementations are stateless; all per-call state lives in the
// arguments and the returned values.
type Characteristic interface {
	// UUID is the characteristic's identity.
	UUID() btuuid.UUID

	// Name is the characteristic's display name.
	Name() string

	// Constraints is the declarative validation contract.
	Constraints() Constraints

	// Dependencies declares required/optional context entries.
	Dependencies() Dependencies

	// Decode converts validated raw bytes to the domain value. The
	// Parse wrapper has already checked Constraints against buf.
	Decode(buf []byte, ctx *Context) (any, error)

	// Encode converts a validated domain value to raw bytes.
	Encode(value any) ([]byte, error)
}

// Base carries the identity, constraints and dependency declaration of
// a concrete characteristic. Embed it and implement Decode (and Encode
// for writable characteristics; Base's Encode rejects).
type Base struct {
	CharUUID btuuid.UUID
	CharName string
	Constr   Constraints
	Deps     Dependencies
}

// UUID returns the characteristic identity.
func (b Base) UUID() btuuid.UUID { return b.CharUUID }

// Name returns the display name.
func (b Base) Name() string { return b.CharName }

// Constraints returns the validation contract.
func (b Base) Constraints() Constraints { return b.Constr }

// Dependencies returns the dependency declaration.
func (b Base) Dependencies() Dependencies { return b.Deps }

// Encode rejects; read-only characteristics inherit this.
func (b Base) Encode(any) ([]byte, error) {
	return nil, Errorf(KindTypeMismatch, "%s (%s) is not encodable", b.CharName, b.CharUUID)
}

// ParseOptions controls the Parse wrapper.
type ParseOptions struct {
	// Trace enables collection of ordered parse steps on the result.
	Trace bool
}

// Parse is the generic decode pipeline: validate input, run the
// concrete Decode, validate output, wrap everything into a Result.
// A panic inside Decode becomes a structured KindInternal failure
// rather than propagating.
func Parse(ch Characteristic, raw []byte, ctx *Context, opts ParseOptions) *Result {
	res := newResult(ch, raw)

	var tracer *Tracer
	if opts.Trace {
		tracer = &Tracer{}
		ctx = ctx.withTracer(tracer)
		defer func() { res.Trace = tracer.Steps() }()
	}

	c := ch.Constraints()
	if err := ValidateInput(raw, c); err != nil {
		tracer.Stepf("validate input: %v", err)
		return res.fail(err)
	}
	tracer.Stepf("validate input: %d bytes ok", len(raw))

	value, err := safeDecode(ch, raw, ctx)
	if err != nil {
		tracer.Stepf("decode: %v", err)
		// Composite decoders may return partial progress next to the
		// error; keep it visible on the failed result.
		res.Value = value
		return res.fail(err)
	}
	tracer.Stepf("decode: %v", value)

	if err := ValidateOutput(value, c); err != nil {
		tracer.Stepf("validate output: %v", err)
		res.Value = value
		return res.fail(err)
	}
	tracer.Stepf("validate output: ok")

	res.Value = value
	res.OK = true
	return res
}

// Build is the generic encode pipeline: validate the value first, then
// run the concrete Encode. No bytes are produced for a value that
// violates the declared constraints.
func Build(ch Characteristic, value any) ([]byte, error) {
	if err := ValidateOutput(value, ch.Constraints()); err != nil {
		return nil, err
	}
	buf, err := ch.Encode(value)
	if err != nil {
		var ce *CodecError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, WrapError(KindNone, err)
	}
	return buf, nil
}

func safeDecode(ch Characteristic, raw []byte, ctx *Context) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = Errorf(KindInternal, "decode panicked: %v", r)
		}
	}()
	return ch.Decode(raw, ctx)
}

// RequireDependency fetches a required dependency's decoded value from
// the context, failing with KindMissingDependency when absent or
// failed. Concrete decoders call this for each Required entry.
func RequireDependency(ctx *Context, u btuuid.UUID) (*Result, error) {
	r, ok := ctx.Value(u)
	if !ok || !r.OK {
		return nil, Errorf(KindMissingDependency, "required characteristic %s unavailable", u)
	}
	return r, nil
}

// OptionalDependency fetches an optional dependency, reporting whether
// a successful decode of it is present.
func OptionalDependency(ctx *Context, u btuuid.UUID) (*Result, bool) {
	r, ok := ctx.Value(u)
	if !ok || !r.OK {
		return nil, false
	}
	return r, true
}
