package characteristics

import (
	"github.com/gattkit/gattkit-go/pkg/bits"
	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/codec"
	"github.com/gattkit/gattkit-go/pkg/gatt"
	"github.com/gattkit/gattkit-go/pkg/medfloat"
)

// Temperature measurement flag bits.
const (
	tmFlagFahrenheit = 0
	tmFlagTimestamp  = 1
	tmFlagTempType   = 2
)

// TemperatureMeasurementValue is the decoded 0x2A1C composite.
type TemperatureMeasurementValue struct {
	// Temperature in the unit selected by Unit. NaN when the device
	// sent the medical float NaN sentinel.
	Temperature float64

	// Unit is °C or °F per the flags byte.
	Unit TemperatureUnit

	// Timestamp of the measurement; zero when not transmitted.
	Timestamp medfloat.DateTime

	// Type is the measurement location; zero when not transmitted.
	Type TemperatureType
}

// TemperatureMeasurement is the 0x2A1C characteristic: a flags byte,
// a 32-bit medical float, and optional timestamp and type fields.
type TemperatureMeasurement struct {
	gatt.Base
}

// NewTemperatureMeasurement creates the thermometer decoder.
func NewTemperatureMeasurement() *TemperatureMeasurement {
	return &TemperatureMeasurement{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A1C),
		CharName: "Temperature Measurement",
		Constr: gatt.Constraints{
			MinLength: 5,
			MaxLength: 13,
			Kind:      gatt.ValueStruct,
		},
	}}
}

// Decode parses the composite layout. A failing optional field keeps
// the fields decoded before it on the partial value.
func (t *TemperatureMeasurement) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	flags := uint64(buf[0])
	val := &TemperatureMeasurementValue{Unit: UnitCelsius}
	if bits.Test(flags, tmFlagFahrenheit) {
		val.Unit = UnitFahrenheit
	}
	ctx.Tracef("flags %#02x, unit %s", flags, val.Unit)

	raw, err := codec.ReadUint(buf, 1, 4, codec.LittleEndian)
	if err != nil {
		return nil, gatt.WrapError(gatt.KindNone, err).WithField("temperature", 1, err)
	}
	if medfloat.FloatKind(uint32(raw)) == medfloat.KindReserved {
		err := gatt.Errorf(gatt.KindSpecialFloatFormat, "reserved float code %#08x", raw)
		return nil, err.WithField("temperature", 1, err)
	}
	val.Temperature = medfloat.DecodeFloat(uint32(raw))
	ctx.Tracef("temperature %v %s", val.Temperature, val.Unit)

	offset := 5
	if bits.Test(flags, tmFlagTimestamp) {
		ts, err := medfloat.DecodeDateTime(buf, offset)
		if err != nil {
			ce := gatt.Errorf(gatt.KindFieldFailure, "timestamp field failed")
			return val, ce.WithField("timestamp", offset, err)
		}
		val.Timestamp = ts
		offset += medfloat.DateTimeLength
	}
	if bits.Test(flags, tmFlagTempType) {
		if offset >= len(buf) {
			ce := gatt.Errorf(gatt.KindFieldFailure, "temperature type field failed")
			return val, ce.WithField("type", offset, codec.ErrInsufficientData)
		}
		val.Type = TemperatureType(buf[offset])
		if !val.Type.Valid() {
			ce := gatt.Errorf(gatt.KindFieldFailure, "temperature type field failed")
			return val, ce.WithField("type", offset,
				gatt.Errorf(gatt.KindEnumValue, "temperature type %d is reserved", buf[offset]))
		}
	}
	return val, nil
}

// Encode builds the wire form of a measurement value.
func (t *TemperatureMeasurement) Encode(value any) ([]byte, error) {
	val, ok := value.(*TemperatureMeasurementValue)
	if !ok {
		return nil, gatt.Errorf(gatt.KindTypeMismatch, "%T is not a *TemperatureMeasurementValue", value)
	}

	var flags uint64
	if val.Unit == UnitFahrenheit {
		flags = bits.SetBit(flags, tmFlagFahrenheit)
	}
	if !val.Timestamp.IsZero() {
		flags = bits.SetBit(flags, tmFlagTimestamp)
	}
	if val.Type != 0 {
		flags = bits.SetBit(flags, tmFlagTempType)
	}

	raw, err := medfloat.EncodeFloat(val.Temperature)
	if err != nil {
		return nil, err
	}

	out := []byte{byte(flags)}
	out = codec.LittleEndian.AppendUint32(out, raw)
	if !val.Timestamp.IsZero() {
		out, err = medfloat.AppendDateTime(out, val.Timestamp)
		if err != nil {
			return nil, err
		}
	}
	if val.Type != 0 {
		if !val.Type.Valid() {
			return nil, gatt.Errorf(gatt.KindEnumValue, "temperature type %d is reserved", val.Type)
		}
		out = append(out, byte(val.Type))
	}
	return out, nil
}

// TemperatureTypeChar is the 0x2A1D characteristic: one enum byte.
type TemperatureTypeChar struct {
	gatt.Base
}

// NewTemperatureType creates the measurement location decoder.
func NewTemperatureType() *TemperatureTypeChar {
	return &TemperatureTypeChar{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A1D),
		CharName: "Temperature Type",
		Constr:   gatt.Constraints{ExactLength: 1, Kind: gatt.ValueUint},
	}}
}

// Decode returns the location, rejecting reserved codes.
func (t *TemperatureTypeChar) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	typ := TemperatureType(buf[0])
	if !typ.Valid() {
		return nil, gatt.Errorf(gatt.KindEnumValue, "temperature type %d is reserved", buf[0])
	}
	return uint8(typ), nil
}
