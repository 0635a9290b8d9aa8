package btuuid

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BaseUUID is the Bluetooth base UUID. Assigned 16- and 32-bit numbers
// occupy bytes 0-3 of this base [Vol 3, Part B, 2.5.1].
var BaseUUID = uuid.MustParse("00000000-0000-1000-8000-00805F9B34FB")

// UUID identifies a characteristic, service, or descriptor.
// The canonical form is always the full 128-bit value; short assigned
// numbers are expanded onto the Bluetooth base. UUID is immutable,
// comparable, and usable as a map key.
type UUID struct {
	u uuid.UUID
}

// From16 expands a 16-bit assigned number onto the Bluetooth base.
func From16(n uint16) UUID {
	return From32(uint32(n))
}

// From32 expands a 32-bit assigned number onto the Bluetooth base.
func From32(n uint32) UUID {
	u := BaseUUID
	binary.BigEndian.PutUint32(u[0:4], n)
	return UUID{u: u}
}

// From128 wraps a full 128-bit UUID.
func From128(u uuid.UUID) UUID {
	return UUID{u: u}
}

// Parse accepts any supported spelling of an identifier:
// "2A19", "0x2A19", "0x00002a19", 8-digit hex, or the full
// "00002a19-0000-1000-8000-00805f9b34fb" long form.
func Parse(s string) (UUID, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return UUID{}, fmt.Errorf("empty identifier")
	}

	if strings.ContainsRune(t, '-') || len(t) == 32 {
		u, err := uuid.Parse(t)
		if err != nil {
			return UUID{}, fmt.Errorf("parsing long-form identifier %q: %w", s, err)
		}
		return UUID{u: u}, nil
	}

	h := strings.TrimPrefix(strings.TrimPrefix(t, "0x"), "0X")
	if len(h) == 0 || len(h) > 8 {
		return UUID{}, fmt.Errorf("identifier %q: hex form must be 1-8 digits", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return UUID{}, fmt.Errorf("parsing short identifier %q: %w", s, err)
	}
	return From32(uint32(n)), nil
}

// MustParse is Parse that panics on error. For package-level constants.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// IsZero reports whether u is the zero UUID.
func (u UUID) IsZero() bool {
	return u.u == uuid.UUID{}
}

// Short returns the assigned number when u sits on the Bluetooth base.
func (u UUID) Short() (uint32, bool) {
	v := u.u
	n := binary.BigEndian.Uint32(v[0:4])
	binary.BigEndian.PutUint32(v[0:4], 0)
	if v != BaseUUID {
		return 0, false
	}
	return n, true
}

// Is16 reports whether u is a 16-bit assigned number on the base.
func (u UUID) Is16() bool {
	n, ok := u.Short()
	return ok && n <= 0xFFFF
}

// Full returns the underlying 128-bit UUID.
func (u UUID) Full() uuid.UUID {
	return u.u
}

// String prints "0x2A19" for short-base UUIDs and the lowercase long
// form otherwise.
func (u UUID) String() string {
	if n, ok := u.Short(); ok {
		if n <= 0xFFFF {
			return fmt.Sprintf("0x%04X", n)
		}
		return fmt.Sprintf("0x%08X", n)
	}
	return u.u.String()
}

// Canonical returns the normalized alias key for u: the lowercase
// long-form string. Every alias spelling resolves to this one key.
func (u UUID) Canonical() string {
	return strings.ToLower(u.u.String())
}

// NormalizeAlias lowercases and squashes an alias spelling so that
// "Battery Level", "battery_level" and "BATTERY-LEVEL" share one key.
// Resolution never derives new spellings at runtime; this is applied to
// keys registered up front and to lookup input.
func NormalizeAlias(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
