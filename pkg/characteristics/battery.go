package characteristics

import (
	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/codec"
	"github.com/gattkit/gattkit-go/pkg/gatt"
)

// BatteryLevel is the 0x2A19 characteristic: one byte, 0-100 percent.
type BatteryLevel struct {
	gatt.Base
}

// NewBatteryLevel creates the battery level decoder.
func NewBatteryLevel() *BatteryLevel {
	return &BatteryLevel{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A19),
		CharName: "Battery Level",
		Constr: gatt.Constraints{
			ExactLength: 1,
			Kind:        gatt.ValueUint,
			MinValue:    gatt.Float64(0),
			MaxValue:    gatt.Float64(100),
		},
	}}
}

// Decode returns the charge level as uint8.
func (b *BatteryLevel) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	level := buf[0]
	ctx.Tracef("battery level %d%%", level)
	return level, nil
}

// Encode accepts any numeric value holding a whole percentage.
func (b *BatteryLevel) Encode(value any) ([]byte, error) {
	v, ok := toFloat(value)
	if !ok {
		return nil, gatt.Errorf(gatt.KindTypeMismatch, "%T is not numeric", value)
	}
	return codec.AppendUint(nil, uint64(v), 1, codec.LittleEndian)
}
