package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/gattkit/gattkit-go/pkg/bits"
)

// Codec errors. The characteristic layer maps these onto its error
// taxonomy with errors.Is.
var (
	// ErrInsufficientData means the buffer is shorter than the field
	// being read requires.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrLengthMismatch means a fixed-length buffer is longer than the
	// declared layout allows.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrValueRange means a value does not fit the requested width and
	// signedness. Encoding never wraps or truncates.
	ErrValueRange = errors.New("value out of range")

	// ErrWidth means the requested field width is not 1-8 bytes.
	ErrWidth = errors.New("invalid field width")

	// ErrMalformedUTF8 means a string field holds invalid UTF-8.
	ErrMalformedUTF8 = errors.New("malformed utf-8")
)

// Engine selects the byte order for multi-byte fields. It combines the
// standard ByteOrder and AppendByteOrder interfaces; binary.LittleEndian
// and binary.BigEndian both satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Byte order engines. The attribute protocol is little-endian
// throughout; big-endian exists for the odd vendor field.
var (
	LittleEndian Engine = binary.LittleEndian
	BigEndian    Engine = binary.BigEndian
)

func checkRead(buf []byte, offset, width int) error {
	if width < 1 || width > 8 {
		return fmt.Errorf("%w: %d bytes", ErrWidth, width)
	}
	if offset < 0 || offset+width > len(buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrInsufficientData, width, offset, len(buf))
	}
	return nil
}

// ReadUint reads a width-byte unsigned integer from buf at offset.
// A nil engine defaults to little-endian.
func ReadUint(buf []byte, offset, width int, e Engine) (uint64, error) {
	if err := checkRead(buf, offset, width); err != nil {
		return 0, err
	}
	var v uint64
	if e == BigEndian {
		for i := 0; i < width; i++ {
			v = v<<8 | uint64(buf[offset+i])
		}
	} else {
		for i := width - 1; i >= 0; i-- {
			v = v<<8 | uint64(buf[offset+i])
		}
	}
	return v, nil
}

// ReadInt reads a width-byte two's complement signed integer.
func ReadInt(buf []byte, offset, width int, e Engine) (int64, error) {
	v, err := ReadUint(buf, offset, width, e)
	if err != nil {
		return 0, err
	}
	return bits.SignExtend(v, uint(width)*8), nil
}

// AppendUint appends v as a width-byte unsigned integer to dst.
// Values that do not fit the width fail with ErrValueRange.
func AppendUint(dst []byte, v uint64, width int, e Engine) ([]byte, error) {
	if width < 1 || width > 8 {
		return dst, fmt.Errorf("%w: %d bytes", ErrWidth, width)
	}
	if width < 8 && v >= uint64(1)<<(uint(width)*8) {
		return dst, fmt.Errorf("%w: %d does not fit %d unsigned bytes", ErrValueRange, v, width)
	}
	if e == BigEndian {
		for i := width - 1; i >= 0; i-- {
			dst = append(dst, byte(v>>(uint(i)*8)))
		}
	} else {
		for i := 0; i < width; i++ {
			dst = append(dst, byte(v>>(uint(i)*8)))
		}
	}
	return dst, nil
}

// AppendInt appends v as a width-byte two's complement signed integer.
func AppendInt(dst []byte, v int64, width int, e Engine) ([]byte, error) {
	if width < 1 || width > 8 {
		return dst, fmt.Errorf("%w: %d bytes", ErrWidth, width)
	}
	if width < 8 {
		limit := int64(1) << (uint(width)*8 - 1)
		if v < -limit || v >= limit {
			return dst, fmt.Errorf("%w: %d does not fit %d signed bytes", ErrValueRange, v, width)
		}
	}
	mask := ^uint64(0)
	if width < 8 {
		mask = uint64(1)<<(uint(width)*8) - 1
	}
	return AppendUint(dst, uint64(v)&mask, width, e)
}

// ReadFloat32 reads a little-endian IEEE-754 single at offset.
func ReadFloat32(buf []byte, offset int) (float32, error) {
	v, err := ReadUint(buf, offset, 4, LittleEndian)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

// ReadFloat64 reads a little-endian IEEE-754 double at offset.
func ReadFloat64(buf []byte, offset int) (float64, error) {
	v, err := ReadUint(buf, offset, 8, LittleEndian)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// AppendFloat32 appends v as a little-endian IEEE-754 single.
func AppendFloat32(dst []byte, v float32) []byte {
	return LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

// AppendFloat64 appends v as a little-endian IEEE-754 double.
func AppendFloat64(dst []byte, v float64) []byte {
	return LittleEndian.AppendUint64(dst, math.Float64bits(v))
}

// ReadString reads a UTF-8 string starting at offset, stopping at the
// first NUL terminator or the end of the buffer.
func ReadString(buf []byte, offset int) (string, error) {
	if offset < 0 || offset > len(buf) {
		return "", fmt.Errorf("%w: offset %d beyond %d bytes", ErrInsufficientData, offset, len(buf))
	}
	b := buf[offset:]
	for i, c := range b {
		if c == 0 {
			b = b[:i]
			break
		}
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w at offset %d", ErrMalformedUTF8, offset)
	}
	return string(b), nil
}

// ReadVariable returns a copy of buf after checking its length against
// the declared min/max byte counts.
func ReadVariable(buf []byte, min, max int) ([]byte, error) {
	if len(buf) < min {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInsufficientData, len(buf), min)
	}
	if max >= 0 && len(buf) > max {
		return nil, fmt.Errorf("%w: %d bytes, at most %d allowed", ErrLengthMismatch, len(buf), max)
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}
