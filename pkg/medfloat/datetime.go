package medfloat

import (
	"fmt"
	"time"

	"github.com/gattkit/gattkit-go/pkg/codec"
)

// DateTimeLength is the wire size of the date_time layout.
const DateTimeLength = 7

// DateTime is the 7-byte protocol calendar value: little-endian year
// followed by month, day, hours, minutes, seconds. The all-zero
// encoding means "unknown" and decodes to the zero DateTime rather
// than an error.
type DateTime struct {
	Year    uint16 // 1582-9999, 0 = unknown
	Month   uint8  // 1-12, 0 = unknown
	Day     uint8  // 1-31, 0 = unknown
	Hours   uint8  // 0-23
	Minutes uint8  // 0-59
	Seconds uint8  // 0-59
}

// IsZero reports whether d is the "unknown" value.
func (d DateTime) IsZero() bool {
	return d == DateTime{}
}

// Time converts d to a time.Time in the given location. The zero
// DateTime converts to the zero time.
func (d DateTime) Time(loc *time.Location) time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day),
		int(d.Hours), int(d.Minutes), int(d.Seconds), 0, loc)
}

// FromTime converts a time.Time to a DateTime. The zero time converts
// to the zero DateTime.
func FromTime(t time.Time) DateTime {
	if t.IsZero() {
		return DateTime{}
	}
	return DateTime{
		Year:    uint16(t.Year()),
		Month:   uint8(t.Month()),
		Day:     uint8(t.Day()),
		Hours:   uint8(t.Hour()),
		Minutes: uint8(t.Minute()),
		Seconds: uint8(t.Second()),
	}
}

func (d DateTime) validate() error {
	if d.Year != 0 && (d.Year < 1582 || d.Year > 9999) {
		return fmt.Errorf("%w: year %d", codec.ErrValueRange, d.Year)
	}
	if d.Month > 12 {
		return fmt.Errorf("%w: month %d", codec.ErrValueRange, d.Month)
	}
	if d.Day > 31 {
		return fmt.Errorf("%w: day %d", codec.ErrValueRange, d.Day)
	}
	if d.Hours > 23 {
		return fmt.Errorf("%w: hours %d", codec.ErrValueRange, d.Hours)
	}
	if d.Minutes > 59 {
		return fmt.Errorf("%w: minutes %d", codec.ErrValueRange, d.Minutes)
	}
	if d.Seconds > 59 {
		return fmt.Errorf("%w: seconds %d", codec.ErrValueRange, d.Seconds)
	}
	return nil
}

// DecodeDateTime reads a 7-byte date_time starting at offset.
func DecodeDateTime(buf []byte, offset int) (DateTime, error) {
	year, err := codec.ReadUint(buf, offset, 2, codec.LittleEndian)
	if err != nil {
		return DateTime{}, err
	}
	if offset+DateTimeLength > len(buf) {
		return DateTime{}, fmt.Errorf("%w: date_time needs %d bytes", codec.ErrInsufficientData, DateTimeLength)
	}
	d := DateTime{
		Year:    uint16(year),
		Month:   buf[offset+2],
		Day:     buf[offset+3],
		Hours:   buf[offset+4],
		Minutes: buf[offset+5],
		Seconds: buf[offset+6],
	}
	if err := d.validate(); err != nil {
		return DateTime{}, err
	}
	return d, nil
}

// AppendDateTime appends the 7-byte encoding of d.
func AppendDateTime(dst []byte, d DateTime) ([]byte, error) {
	if err := d.validate(); err != nil {
		return dst, err
	}
	dst = codec.LittleEndian.AppendUint16(dst, d.Year)
	return append(dst, d.Month, d.Day, d.Hours, d.Minutes, d.Seconds), nil
}
