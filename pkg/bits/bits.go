// Package bits provides the pure integer mask/shift helpers used to pack
// and unpack composite flag fields.
//
// All functions operate on uint64 working values with an explicit field
// position (start bit, width in bits, LSB 0). Passing a start/width pair
// that does not fit the declared total width is a programmer error and
// panics; the Check variants return an error instead for positions taken
// from untrusted input.
package bits

import (
	"fmt"
	mathbits "math/bits"
)

// ErrFieldRange reports an out-of-range start/width pair.
var ErrFieldRange = fmt.Errorf("bit field out of range")

// Field is one (value, start, width) triple for Merge and Split.
type Field struct {
	Value uint64
	Start uint
	Width uint
}

func checkField(start, width, total uint) error {
	if width == 0 || width > 64 || total > 64 || start+width > total {
		return fmt.Errorf("%w: start %d width %d in %d bits", ErrFieldRange, start, width, total)
	}
	return nil
}

// Mask returns a mask of width one-bits starting at start.
func Mask(start, width uint) uint64 {
	if err := checkField(start, width, 64); err != nil {
		panic(err)
	}
	if width == 64 {
		return ^uint64(0) << start
	}
	return ((uint64(1) << width) - 1) << start
}

// Extract returns the width-bit field of value starting at start.
func Extract(value uint64, start, width uint) uint64 {
	return (value & Mask(start, width)) >> start
}

// Set returns value with the width-bit field at start replaced by field.
// Bits of field above width are discarded.
func Set(value, field uint64, start, width uint) uint64 {
	m := Mask(start, width)
	return (value &^ m) | ((field << start) & m)
}

// CheckExtract is Extract with an error return instead of a panic.
func CheckExtract(value uint64, start, width, total uint) (uint64, error) {
	if err := checkField(start, width, total); err != nil {
		return 0, err
	}
	return Extract(value, start, width), nil
}

// CheckSet is Set with an error return instead of a panic.
func CheckSet(value, field uint64, start, width, total uint) (uint64, error) {
	if err := checkField(start, width, total); err != nil {
		return 0, err
	}
	return Set(value, field, start, width), nil
}

// Test reports whether bit is set in value.
func Test(value uint64, bit uint) bool {
	return Extract(value, bit, 1) == 1
}

// SetBit returns value with bit set.
func SetBit(value uint64, bit uint) uint64 {
	return value | Mask(bit, 1)
}

// ClearBit returns value with bit cleared.
func ClearBit(value uint64, bit uint) uint64 {
	return value &^ Mask(bit, 1)
}

// ToggleBit returns value with bit flipped.
func ToggleBit(value uint64, bit uint) uint64 {
	return value ^ Mask(bit, 1)
}

// OnesCount returns the number of set bits in value.
func OnesCount(value uint64) int {
	return mathbits.OnesCount64(value)
}

// FirstSet returns the position of the lowest set bit, or -1.
func FirstSet(value uint64) int {
	if value == 0 {
		return -1
	}
	return mathbits.TrailingZeros64(value)
}

// LastSet returns the position of the highest set bit, or -1.
func LastSet(value uint64) int {
	if value == 0 {
		return -1
	}
	return 63 - mathbits.LeadingZeros64(value)
}

// RotateLeft rotates the low width bits of value left by n. Bits above
// width must be zero and are preserved as zero.
func RotateLeft(value uint64, n int, width uint) uint64 {
	if err := checkField(0, width, 64); err != nil {
		panic(err)
	}
	m := Mask(0, width)
	v := value & m
	n = ((n % int(width)) + int(width)) % int(width)
	return ((v << uint(n)) | (v >> (width - uint(n)))) & m
}

// RotateRight rotates the low width bits of value right by n.
func RotateRight(value uint64, n int, width uint) uint64 {
	return RotateLeft(value, -n, width)
}

// SignExtend interprets the low width bits of value as a two's
// complement integer and widens it to int64.
func SignExtend(value uint64, width uint) int64 {
	if err := checkField(0, width, 64); err != nil {
		panic(err)
	}
	shift := 64 - width
	return int64(value<<shift) >> shift
}

// Merge packs the given fields into a single integer. Overlapping
// fields are a programmer error; later fields win.
func Merge(fields ...Field) uint64 {
	var v uint64
	for _, f := range fields {
		v = Set(v, f.Value, f.Start, f.Width)
	}
	return v
}

// Split extracts each (start, width) position of the given fields from
// value, returning a parallel slice of field values.
func Split(value uint64, fields ...Field) []uint64 {
	out := make([]uint64, len(fields))
	for i, f := range fields {
		out[i] = Extract(value, f.Start, f.Width)
	}
	return out
}
