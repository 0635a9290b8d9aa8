// Package scaled implements the linear-scaling codec templates that
// back most numeric characteristics.
//
// A template wraps one fixed-width integer field and converts between
// raw wire values and physical units:
//
//	value = Scale * (raw + Offset)
//
// The specification dataset expresses the same rule as a multiplier,
// decimal exponent and offset triple; FromExponent builds the
// equivalent template.
package scaled

import (
	"errors"
	"fmt"
	"math"

	"github.com/gattkit/gattkit-go/pkg/codec"
)

// ErrWidth reports a template width outside 1-4 bytes.
var ErrWidth = errors.New("scaled template width must be 1-4 bytes")

// Template describes one linearly scaled integer field.
type Template struct {
	// Width is the wire size in bytes (1-4).
	Width int

	// Signed selects two's complement interpretation.
	Signed bool

	// Scale multiplies the offset raw value. Zero means 1.
	Scale float64

	// Offset is added to the raw value before scaling.
	Offset float64

	// Endian is the byte order; nil means little-endian.
	Endian codec.Engine
}

// New returns an unsigned little-endian template with the given width
// and scale factor.
func New(width int, scale float64) Template {
	return Template{Width: width, Scale: scale}
}

// FromExponent builds a template from the dataset's (M, d, b) form:
// scale factor M*10^d and offset b.
func FromExponent(width int, signed bool, m int, d int, b float64) Template {
	return Template{
		Width:  width,
		Signed: signed,
		Scale:  float64(m) * math.Pow(10, float64(d)),
		Offset: b,
	}
}

func (t Template) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

func (t Template) check() error {
	if t.Width < 1 || t.Width > 4 {
		return fmt.Errorf("%w: %d", ErrWidth, t.Width)
	}
	return nil
}

// Resolution returns the physical-unit step of one raw increment.
func (t Template) Resolution() float64 {
	return math.Abs(t.scale())
}

// Decode reads the raw field at offset and applies the scaling rule.
func (t Template) Decode(buf []byte, offset int) (float64, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	var raw float64
	if t.Signed {
		v, err := codec.ReadInt(buf, offset, t.Width, t.Endian)
		if err != nil {
			return 0, err
		}
		raw = float64(v)
	} else {
		v, err := codec.ReadUint(buf, offset, t.Width, t.Endian)
		if err != nil {
			return 0, err
		}
		raw = float64(v)
	}
	return t.scale() * (raw + t.Offset), nil
}

// Append encodes value by inverting the scaling rule, rounding to the
// nearest raw step, and appending the fixed-width field. Values whose
// raw form does not fit the width fail with codec.ErrValueRange.
func (t Template) Append(dst []byte, value float64) ([]byte, error) {
	if err := t.check(); err != nil {
		return dst, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return dst, fmt.Errorf("%w: %v is not finite", codec.ErrValueRange, value)
	}
	raw := math.Round(value/t.scale() - t.Offset)
	if t.Signed {
		limit := float64(int64(1) << (uint(t.Width)*8 - 1))
		if raw < -limit || raw >= limit {
			return dst, fmt.Errorf("%w: raw %v does not fit %d signed bytes", codec.ErrValueRange, raw, t.Width)
		}
		return codec.AppendInt(dst, int64(raw), t.Width, t.Endian)
	}
	if raw < 0 || raw >= float64(uint64(1)<<(uint(t.Width)*8)) {
		return dst, fmt.Errorf("%w: raw %v does not fit %d unsigned bytes", codec.ErrValueRange, raw, t.Width)
	}
	return codec.AppendUint(dst, uint64(raw), t.Width, t.Endian)
}

// Encode is Append into a fresh buffer.
func (t Template) Encode(value float64) ([]byte, error) {
	return t.Append(make([]byte, 0, t.Width), value)
}
