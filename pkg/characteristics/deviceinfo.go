package characteristics

import (
	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/codec"
	"github.com/gattkit/gattkit-go/pkg/gatt"
)

// utf8Char is the shared implementation behind the UTF-8 string
// characteristics (device name, the device information strings).
type utf8Char struct {
	gatt.Base
	writable bool
}

func newUTF8Char(u uint16, name string, maxLen int, writable bool) *utf8Char {
	return &utf8Char{
		Base: gatt.Base{
			CharUUID: btuuid.From16(u),
			CharName: name,
			Constr:   gatt.Constraints{MaxLength: maxLen, Kind: gatt.ValueString},
		},
		writable: writable,
	}
}

func (c *utf8Char) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	s, err := codec.ReadString(buf, 0)
	if err != nil {
		return nil, err
	}
	ctx.Tracef("%s: %q", c.CharName, s)
	return s, nil
}

func (c *utf8Char) Encode(value any) ([]byte, error) {
	if !c.writable {
		return c.Base.Encode(value)
	}
	s, ok := value.(string)
	if !ok {
		return nil, gatt.Errorf(gatt.KindTypeMismatch, "%T is not a string", value)
	}
	if max := c.Constr.MaxLength; max > 0 && len(s) > max {
		return nil, gatt.Errorf(gatt.KindLengthMismatch, "%d bytes, at most %d allowed", len(s), max)
	}
	return []byte(s), nil
}

// NewDeviceName creates the 0x2A00 decoder: UTF-8, up to 248 bytes.
func NewDeviceName() gatt.Characteristic {
	return newUTF8Char(0x2A00, "Device Name", 248, true)
}

// Device information service strings, read-only.

func NewModelNumber() gatt.Characteristic {
	return newUTF8Char(0x2A24, "Model Number String", 0, false)
}

func NewSerialNumber() gatt.Characteristic {
	return newUTF8Char(0x2A25, "Serial Number String", 0, false)
}

func NewFirmwareRevision() gatt.Characteristic {
	return newUTF8Char(0x2A26, "Firmware Revision String", 0, false)
}

func NewHardwareRevision() gatt.Characteristic {
	return newUTF8Char(0x2A27, "Hardware Revision String", 0, false)
}

func NewSoftwareRevision() gatt.Characteristic {
	return newUTF8Char(0x2A28, "Software Revision String", 0, false)
}

func NewManufacturerName() gatt.Characteristic {
	return newUTF8Char(0x2A29, "Manufacturer Name String", 0, false)
}

// Appearance is the 0x2A01 characteristic: a uint16 category code.
type Appearance struct {
	gatt.Base
}

// NewAppearance creates the appearance decoder.
func NewAppearance() *Appearance {
	return &Appearance{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A01),
		CharName: "Appearance",
		Constr:   gatt.Constraints{ExactLength: 2, Kind: gatt.ValueUint},
	}}
}

// Decode returns the category code as uint16.
func (a *Appearance) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	v, err := codec.ReadUint(buf, 0, 2, codec.LittleEndian)
	if err != nil {
		return nil, err
	}
	return uint16(v), nil
}

// SystemID is the 0x2A23 characteristic: an 8-byte EUI-64.
type SystemID struct {
	gatt.Base
}

// NewSystemID creates the system id decoder.
func NewSystemID() *SystemID {
	return &SystemID{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A23),
		CharName: "System ID",
		Constr:   gatt.Constraints{ExactLength: 8, Kind: gatt.ValueBytes},
	}}
}

// Decode returns a copy of the 8 identity bytes.
func (s *SystemID) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	return codec.ReadVariable(buf, 8, 8)
}
