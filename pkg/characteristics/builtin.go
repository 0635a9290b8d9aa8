package characteristics

import "github.com/gattkit/gattkit-go/pkg/gatt"

// Builtin returns one instance of every characteristic this package
// implements. The slice is freshly allocated on each call so callers
// may bind the entries to independent registries.
func Builtin() []gatt.Characteristic {
	return []gatt.Characteristic{
		NewBatteryLevel(),

		NewDeviceName(),
		NewAppearance(),
		NewSystemID(),
		NewModelNumber(),
		NewSerialNumber(),
		NewFirmwareRevision(),
		NewHardwareRevision(),
		NewSoftwareRevision(),
		NewManufacturerName(),

		NewTemperatureMeasurement(),
		NewTemperatureType(),
		NewHeartRateMeasurement(),
		NewBodySensorLocation(),
		NewHeartRateControlPoint(),

		NewTemperature(),
		NewHumidity(),
		NewPressure(),
		NewElevation(),
		NewUVIndex(),
		NewIrradiance(),
		NewHeatIndex(),
		NewVoltage(),

		NewDigital(),
		NewAnalog(),
		NewAggregate(),
	}
}
