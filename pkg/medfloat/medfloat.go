package medfloat

import (
	"errors"
	"fmt"
	"math"

	"github.com/gattkit/gattkit-go/pkg/bits"
)

// Codec errors.
var (
	// ErrValueRange means no exponent in range can represent the value.
	ErrValueRange = errors.New("value not representable")

	// ErrSpecialFormat means raw bits map to neither a finite value nor
	// a documented sentinel.
	ErrSpecialFormat = errors.New("unmappable special float value")
)

// Reserved SFLOAT mantissa codes (raw 12-bit patterns).
const (
	sfloatNaN    = 0x07FF
	sfloatNRes   = 0x0800
	sfloatPosInf = 0x07FE
	sfloatNegInf = 0x0802
	sfloatRsvd   = 0x0801
)

// Reserved FLOAT mantissa codes (raw 24-bit patterns).
const (
	floatNaN    = 0x7FFFFF
	floatNRes   = 0x800000
	floatPosInf = 0x7FFFFE
	floatNegInf = 0x800002
	floatRsvd   = 0x800001
)

// Finite mantissa magnitude limits. The three top codes on each side
// are reserved, so the usable range stops short of the two's
// complement extremes.
const (
	sfloatMantissaMax = 0x07FD // 2045
	sfloatMantissaMin = -0x7FD // -2045
	sfloatExpMax      = 7
	sfloatExpMin      = -8

	floatMantissaMax = 0x7FFFFD  // 8388605
	floatMantissaMin = -0x7FFFFD // -8388605
	floatExpMax      = 127
	floatExpMin      = -128
)

// Kind classifies a raw medical float value.
type Kind uint8

const (
	KindFinite Kind = iota
	KindNaN
	KindPosInf
	KindNegInf
	KindNRes     // "not at this resolution"
	KindReserved // the one reserved sentinel code
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFinite:
		return "finite"
	case KindNaN:
		return "nan"
	case KindPosInf:
		return "+inf"
	case KindNegInf:
		return "-inf"
	case KindNRes:
		return "nres"
	case KindReserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// SFloatKind classifies a raw 16-bit SFLOAT without decoding it.
func SFloatKind(raw uint16) Kind {
	switch bits.Extract(uint64(raw), 0, 12) {
	case sfloatNaN:
		return KindNaN
	case sfloatPosInf:
		return KindPosInf
	case sfloatNegInf:
		return KindNegInf
	case sfloatNRes:
		return KindNRes
	case sfloatRsvd:
		return KindReserved
	default:
		return KindFinite
	}
}

// FloatKind classifies a raw 32-bit FLOAT without decoding it.
func FloatKind(raw uint32) Kind {
	switch bits.Extract(uint64(raw), 0, 24) {
	case floatNaN:
		return KindNaN
	case floatPosInf:
		return KindPosInf
	case floatNegInf:
		return KindNegInf
	case floatNRes:
		return KindNRes
	case floatRsvd:
		return KindReserved
	default:
		return KindFinite
	}
}

func sentinel(k Kind) float64 {
	switch k {
	case KindPosInf:
		return math.Inf(1)
	case KindNegInf:
		return math.Inf(-1)
	default:
		// NaN, NRes, and the reserved code all surface as NaN;
		// callers that care which one use SFloatKind/FloatKind.
		return math.NaN()
	}
}

// DecodeSFloat converts a raw 16-bit SFLOAT (4-bit exponent, 12-bit
// mantissa, both two's complement) to float64. Sentinel mantissa codes
// are checked before any arithmetic.
func DecodeSFloat(raw uint16) float64 {
	if k := SFloatKind(raw); k != KindFinite {
		return sentinel(k)
	}
	mantissa := bits.SignExtend(bits.Extract(uint64(raw), 0, 12), 12)
	exponent := bits.SignExtend(bits.Extract(uint64(raw), 12, 4), 4)
	return float64(mantissa) * math.Pow(10, float64(exponent))
}

// DecodeFloat converts a raw 32-bit FLOAT (8-bit exponent, 24-bit
// mantissa) to float64.
func DecodeFloat(raw uint32) float64 {
	if k := FloatKind(raw); k != KindFinite {
		return sentinel(k)
	}
	mantissa := bits.SignExtend(bits.Extract(uint64(raw), 0, 24), 24)
	exponent := bits.SignExtend(bits.Extract(uint64(raw), 24, 8), 8)
	return float64(mantissa) * math.Pow(10, float64(exponent))
}

// encodeFinite picks the exponent giving minimal precision loss: the
// smallest exponent whose rounded mantissa still fits the signed range.
func encodeFinite(v float64, expMin, expMax, mantMin, mantMax int) (mantissa, exponent int64, err error) {
	for exp := expMin; exp <= expMax; exp++ {
		m := math.Round(v * math.Pow(10, float64(-exp)))
		if m >= float64(mantMin) && m <= float64(mantMax) {
			return int64(m), int64(exp), nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %g", ErrValueRange, v)
}

// EncodeSFloat converts a float64 to raw SFLOAT bits. IEEE NaN and
// infinities map to the reserved mantissa codes with exponent 0.
func EncodeSFloat(v float64) (uint16, error) {
	switch {
	case math.IsNaN(v):
		return sfloatNaN, nil
	case math.IsInf(v, 1):
		return sfloatPosInf, nil
	case math.IsInf(v, -1):
		return uint16(sfloatNegInf), nil
	}
	m, e, err := encodeFinite(v, sfloatExpMin, sfloatExpMax, sfloatMantissaMin, sfloatMantissaMax)
	if err != nil {
		return 0, err
	}
	raw := bits.Merge(
		bits.Field{Value: uint64(m) & 0x0FFF, Start: 0, Width: 12},
		bits.Field{Value: uint64(e) & 0x000F, Start: 12, Width: 4},
	)
	return uint16(raw), nil
}

// EncodeFloat converts a float64 to raw FLOAT bits.
func EncodeFloat(v float64) (uint32, error) {
	switch {
	case math.IsNaN(v):
		return floatNaN, nil
	case math.IsInf(v, 1):
		return floatPosInf, nil
	case math.IsInf(v, -1):
		return floatNegInf, nil
	}
	m, e, err := encodeFinite(v, floatExpMin, floatExpMax, floatMantissaMin, floatMantissaMax)
	if err != nil {
		return 0, err
	}
	raw := bits.Merge(
		bits.Field{Value: uint64(m) & 0xFFFFFF, Start: 0, Width: 24},
		bits.Field{Value: uint64(e) & 0xFF, Start: 24, Width: 8},
	)
	return uint32(raw), nil
}
