package characteristics

import (
	"github.com/gattkit/gattkit-go/pkg/bits"
	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/codec"
	"github.com/gattkit/gattkit-go/pkg/gatt"
)

// Heart rate measurement flag bits.
const (
	hrFlagValue16     = 0
	hrFlagContactLow  = 1
	hrFlagContactHigh = 2
	hrFlagEnergy      = 3
	hrFlagRRInterval  = 4
)

// HeartRateMeasurementValue is the decoded 0x2A37 composite.
type HeartRateMeasurementValue struct {
	// BPM is the heart rate in beats per minute.
	BPM uint16

	// Contact is the skin contact state from the flags byte.
	Contact SensorContact

	// HasEnergy reports whether EnergyJoules was transmitted.
	HasEnergy bool

	// EnergyJoules is the accumulated energy expended.
	EnergyJoules uint16

	// RRIntervals holds the beat-to-beat intervals in seconds.
	RRIntervals []float64
}

// HeartRateMeasurement is the 0x2A37 characteristic: a flags byte, an
// 8- or 16-bit rate, and optional energy and RR interval fields.
type HeartRateMeasurement struct {
	gatt.Base
}

// NewHeartRateMeasurement creates the heart rate decoder.
func NewHeartRateMeasurement() *HeartRateMeasurement {
	return &HeartRateMeasurement{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A37),
		CharName: "Heart Rate Measurement",
		Constr: gatt.Constraints{
			MinLength: 2,
			Kind:      gatt.ValueStruct,
		},
	}}
}

// Decode parses the variable layout selected by the flags byte.
func (h *HeartRateMeasurement) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	flags := uint64(buf[0])
	val := &HeartRateMeasurementValue{}

	contact := bits.Extract(flags, hrFlagContactLow, 2)
	switch contact {
	case 2:
		val.Contact = ContactNotDetected
	case 3:
		val.Contact = ContactDetected
	default:
		val.Contact = ContactNotSupported
	}

	offset := 1
	width := 1
	if bits.Test(flags, hrFlagValue16) {
		width = 2
	}
	bpm, err := codec.ReadUint(buf, offset, width, codec.LittleEndian)
	if err != nil {
		ce := gatt.Errorf(gatt.KindFieldFailure, "heart rate field failed")
		return nil, ce.WithField("heart_rate", offset, err)
	}
	val.BPM = uint16(bpm)
	offset += width
	ctx.Tracef("heart rate %d bpm, contact %s", val.BPM, val.Contact)

	if bits.Test(flags, hrFlagEnergy) {
		energy, err := codec.ReadUint(buf, offset, 2, codec.LittleEndian)
		if err != nil {
			ce := gatt.Errorf(gatt.KindFieldFailure, "energy expended field failed")
			return val, ce.WithField("energy_expended", offset, err)
		}
		val.HasEnergy = true
		val.EnergyJoules = uint16(energy)
		offset += 2
	}

	if bits.Test(flags, hrFlagRRInterval) {
		for offset < len(buf) {
			rr, err := codec.ReadUint(buf, offset, 2, codec.LittleEndian)
			if err != nil {
				ce := gatt.Errorf(gatt.KindFieldFailure, "rr interval field failed")
				return val, ce.WithField("rr_interval", offset, err)
			}
			// RR intervals are transmitted in units of 1/1024 s.
			val.RRIntervals = append(val.RRIntervals, float64(rr)/1024)
			offset += 2
		}
		if len(val.RRIntervals) == 0 {
			ce := gatt.Errorf(gatt.KindFieldFailure, "rr interval field failed")
			return val, ce.WithField("rr_interval", offset, codec.ErrInsufficientData)
		}
	}
	return val, nil
}

// BodySensorLocationChar is the 0x2A38 characteristic: one enum byte.
type BodySensorLocationChar struct {
	gatt.Base
}

// NewBodySensorLocation creates the sensor location decoder.
func NewBodySensorLocation() *BodySensorLocationChar {
	return &BodySensorLocationChar{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A38),
		CharName: "Body Sensor Location",
		Constr:   gatt.Constraints{ExactLength: 1, Kind: gatt.ValueUint},
	}}
}

// Decode returns the location, rejecting reserved codes.
func (b *BodySensorLocationChar) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	loc := BodySensorLocation(buf[0])
	if !loc.Valid() {
		return nil, gatt.Errorf(gatt.KindEnumValue, "body sensor location %d is reserved", buf[0])
	}
	return uint8(loc), nil
}

// HeartRateControlPoint is the 0x2A39 characteristic: a write-only
// command byte.
type HeartRateControlPoint struct {
	gatt.Base
}

// ResetEnergyExpended is the only defined control point command.
const ResetEnergyExpended uint8 = 0x01

// NewHeartRateControlPoint creates the control point codec.
func NewHeartRateControlPoint() *HeartRateControlPoint {
	return &HeartRateControlPoint{Base: gatt.Base{
		CharUUID: btuuid.From16(0x2A39),
		CharName: "Heart Rate Control Point",
		Constr:   gatt.Constraints{ExactLength: 1, Kind: gatt.ValueUint},
	}}
}

// Decode validates the command byte.
func (h *HeartRateControlPoint) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	if buf[0] != ResetEnergyExpended {
		return nil, gatt.Errorf(gatt.KindEnumValue, "control point command %d is reserved", buf[0])
	}
	return buf[0], nil
}

// Encode builds the command byte.
func (h *HeartRateControlPoint) Encode(value any) ([]byte, error) {
	v, ok := value.(uint8)
	if !ok || v != ResetEnergyExpended {
		return nil, gatt.Errorf(gatt.KindEnumValue, "%v is not a defined control point command", value)
	}
	return []byte{v}, nil
}
