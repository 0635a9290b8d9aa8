package characteristics

import (
	"github.com/gattkit/gattkit-go/pkg/bits"
	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/codec"
	"github.com/gattkit/gattkit-go/pkg/gatt"
)

// DigitalState is one 2-bit signal in a Digital characteristic.
type DigitalState uint8

const (
	DigitalInactive DigitalState = 0
	DigitalActive   DigitalState = 1
	DigitalTristate DigitalState = 2
	DigitalUnknown  DigitalState = 3
)

func (d DigitalState) String() string {
	switch d {
	case DigitalInactive:
		return "inactive"
	case DigitalActive:
		return "active"
	case DigitalTristate:
		return "tri-state"
	case DigitalUnknown:
		return "unknown"
	}
	return "invalid"
}

// Digital is the 0x2A56 characteristic: a packed array of 2-bit
// signal states, four per byte, least significant pair first.
type Digital struct {
	gatt.Base
}

// NewDigital creates the digital I/O codec.
func NewDigital() *Digital {
	return &Digital{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A56),
		CharName: "Digital",
		Constr: gatt.Constraints{
			MinLength: 1,
			Variable:  true,
			Kind:      gatt.ValueStruct,
		},
	}}
}

// Decode unpacks every 2-bit state. Trailing states in the last byte
// are part of the value; the signal count is a service-level property
// the characteristic itself does not carry.
func (d *Digital) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	states := make([]DigitalState, 0, len(buf)*4)
	for _, b := range buf {
		for pair := uint(0); pair < 4; pair++ {
			states = append(states, DigitalState(bits.Extract(uint64(b), pair*2, 2)))
		}
	}
	ctx.Tracef("digital: %d states from %d bytes", len(states), len(buf))
	return states, nil
}

// Encode packs the states back into bytes, padding the last byte with
// unknown states.
func (d *Digital) Encode(value any) ([]byte, error) {
	states, ok := value.([]DigitalState)
	if !ok {
		return nil, gatt.Errorf(gatt.KindTypeMismatch, "digital value must be []DigitalState, got %T", value)
	}
	if len(states) == 0 {
		return nil, gatt.Errorf(gatt.KindValueRange, "digital value needs at least one state")
	}
	buf := make([]byte, (len(states)+3)/4)
	for i, s := range states {
		if s > DigitalUnknown {
			return nil, gatt.Errorf(gatt.KindEnumValue, "digital state %d out of range", s)
		}
		packed := bits.Set(uint64(buf[i/4]), uint64(s), uint(i%4)*2, 2)
		buf[i/4] = byte(packed)
	}
	return buf, nil
}

// Analog is the 0x2A58 characteristic: a single little-endian uint16.
type Analog struct {
	gatt.Base
}

// NewAnalog creates the analog I/O codec.
func NewAnalog() *Analog {
	return &Analog{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A58),
		CharName: "Analog",
		Constr:   gatt.Constraints{ExactLength: 2, Kind: gatt.ValueUint},
	}}
}

func (a *Analog) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	v, err := codec.ReadUint(buf, 0, 2, codec.LittleEndian)
	if err != nil {
		return nil, err
	}
	return uint16(v), nil
}

func (a *Analog) Encode(value any) ([]byte, error) {
	f, ok := toFloat(value)
	if !ok {
		return nil, gatt.Errorf(gatt.KindTypeMismatch, "%T is not numeric", value)
	}
	if f < 0 || f > 65535 || f != float64(uint16(f)) {
		return nil, gatt.Errorf(gatt.KindValueRange, "%v does not fit an analog value", value)
	}
	return codec.AppendUint(nil, uint64(f), 2, codec.LittleEndian)
}

// AggregateValue is the decoded 0x2A5A composite.
type AggregateValue struct {
	// Digital holds the states of the digital inputs, as many as the
	// Digital characteristic on the same service carries.
	Digital []DigitalState

	// Analog holds one value per analog input.
	Analog []uint16
}

// Aggregate is the 0x2A5A characteristic: the concatenated input
// portions of the service's Digital and Analog characteristics. It
// cannot be decoded on its own; the sibling results fix the layout.
type Aggregate struct {
	gatt.Base
}

// NewAggregate creates the aggregate codec. It requires the Digital
// and Analog results to determine how the payload splits.
func NewAggregate() *Aggregate {
	return &Aggregate{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A5A),
		CharName: "Aggregate",
		Constr: gatt.Constraints{
			MinLength: 1,
			Variable:  true,
			Kind:      gatt.ValueStruct,
		},
		Deps: gatt.Dependencies{
			Required: []btuuid.UUID{
				btuuid.From16(0x2A56),
				btuuid.From16(0x2A58),
			},
		},
	}}
}

// Decode splits the payload using the sibling Digital raw length,
// then reads the remaining bytes as analog uint16 values.
func (a *Aggregate) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	digital, err := gatt.RequireDependency(ctx, btuuid.From16(0x2A56))
	if err != nil {
		return nil, err
	}
	if _, err := gatt.RequireDependency(ctx, btuuid.From16(0x2A58)); err != nil {
		return nil, err
	}

	digitalLen := len(digital.Raw)
	if digitalLen > len(buf) {
		return nil, gatt.Errorf(gatt.KindInsufficientData,
			"aggregate payload %d bytes, digital portion needs %d", len(buf), digitalLen)
	}
	if (len(buf)-digitalLen)%2 != 0 {
		return nil, gatt.Errorf(gatt.KindLengthMismatch,
			"aggregate analog portion has odd length %d", len(buf)-digitalLen)
	}

	val := &AggregateValue{}
	states, ok := digital.Value.([]DigitalState)
	if !ok {
		return nil, gatt.Errorf(gatt.KindTypeMismatch, "digital sibling decoded to %T", digital.Value)
	}
	for i := range states {
		val.Digital = append(val.Digital, DigitalState(bits.Extract(uint64(buf[i/4]), uint(i%4)*2, 2)))
	}

	for offset := digitalLen; offset < len(buf); offset += 2 {
		v, err := codec.ReadUint(buf, offset, 2, codec.LittleEndian)
		if err != nil {
			ce := gatt.Errorf(gatt.KindFieldFailure, "aggregate analog field failed")
			return val, ce.WithField("analog", offset, err)
		}
		val.Analog = append(val.Analog, uint16(v))
	}
	ctx.Tracef("aggregate: %d digital states, %d analog values", len(val.Digital), len(val.Analog))
	return val, nil
}
