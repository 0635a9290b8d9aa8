package characteristics

import (
	"github.com/gattkit/gattkit-go/pkg/gatt"
	"github.com/gattkit/gattkit-go/pkg/scaled"
)

// Environmental sensing characteristics. Each is one scaled integer
// field; the sentinel raw values follow the GATT Specification
// Supplement ("value is not known").

// NewTemperature creates the 0x2A6E decoder: sint16, 0.01 °C.
func NewTemperature() gatt.Characteristic {
	return newScaledChar(0x2A6E, "Temperature",
		scaled.Template{Width: 2, Signed: true, Scale: 0.01},
		gatt.Constraints{MinValue: gatt.Float64(-273.15)},
	).withUnknown(0x8000)
}

// NewHumidity creates the 0x2A6F decoder: uint16, 0.01 percent.
func NewHumidity() gatt.Characteristic {
	return newScaledChar(0x2A6F, "Humidity",
		scaled.Template{Width: 2, Scale: 0.01},
		gatt.Constraints{MinValue: gatt.Float64(0), MaxValue: gatt.Float64(100)},
	).withUnknown(0xFFFF)
}

// NewPressure creates the 0x2A6D decoder: uint32, 0.1 Pa.
func NewPressure() gatt.Characteristic {
	return newScaledChar(0x2A6D, "Pressure",
		scaled.Template{Width: 4, Scale: 0.1},
		gatt.Constraints{MinValue: gatt.Float64(0)},
	)
}

// NewElevation creates the 0x2A6C decoder: sint24, 0.01 m.
func NewElevation() gatt.Characteristic {
	return newScaledChar(0x2A6C, "Elevation",
		scaled.Template{Width: 3, Signed: true, Scale: 0.01},
		gatt.Constraints{},
	)
}

// NewUVIndex creates the 0x2A76 decoder: plain uint8.
func NewUVIndex() gatt.Characteristic {
	return newScaledChar(0x2A76, "UV Index",
		scaled.Template{Width: 1},
		gatt.Constraints{},
	).withUnknown(0xFF)
}

// NewIrradiance creates the 0x2A77 decoder: uint16, 0.1 W/m².
func NewIrradiance() gatt.Characteristic {
	return newScaledChar(0x2A77, "Irradiance",
		scaled.Template{Width: 2, Scale: 0.1},
		gatt.Constraints{MinValue: gatt.Float64(0)},
	)
}

// NewHeatIndex creates the 0x2A7A decoder: sint8, whole °C.
func NewHeatIndex() gatt.Characteristic {
	return newScaledChar(0x2A7A, "Heat Index",
		scaled.Template{Width: 1, Signed: true},
		gatt.Constraints{},
	).withUnknown(0x7F)
}

// NewVoltage creates the 0x2B18 decoder: uint16 in units of 1/64 V.
func NewVoltage() gatt.Characteristic {
	return newScaledChar(0x2B18, "Voltage",
		scaled.Template{Width: 2, Scale: 1.0 / 64},
		gatt.Constraints{MinValue: gatt.Float64(0)},
	).withUnknown(0xFFFF)
}
