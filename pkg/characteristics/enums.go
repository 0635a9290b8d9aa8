package characteristics

// TemperatureUnit selects the measurement scale of a thermometer
// reading.
type TemperatureUnit uint8

const (
	UnitCelsius    TemperatureUnit = 0
	UnitFahrenheit TemperatureUnit = 1
)

// String returns the unit symbol.
func (u TemperatureUnit) String() string {
	if u == UnitFahrenheit {
		return "°F"
	}
	return "°C"
}

// TemperatureType is where a thermometer measurement was taken.
type TemperatureType uint8

const (
	TempTypeArmpit TemperatureType = iota + 1
	TempTypeBody
	TempTypeEar
	TempTypeFinger
	TempTypeGastroIntestinal
	TempTypeMouth
	TempTypeRectum
	TempTypeToe
	TempTypeTympanum
)

// Valid reports whether t is a defined enumeration member.
func (t TemperatureType) Valid() bool {
	return t >= TempTypeArmpit && t <= TempTypeTympanum
}

// String returns the location name.
func (t TemperatureType) String() string {
	names := []string{
		"armpit", "body", "ear", "finger", "gastro-intestinal",
		"mouth", "rectum", "toe", "tympanum",
	}
	if !t.Valid() {
		return "reserved"
	}
	return names[t-1]
}

// BodySensorLocation is where a heart rate sensor is worn.
type BodySensorLocation uint8

const (
	LocationOther BodySensorLocation = iota
	LocationChest
	LocationWrist
	LocationFinger
	LocationHand
	LocationEarLobe
	LocationFoot
)

// Valid reports whether l is a defined enumeration member.
func (l BodySensorLocation) Valid() bool {
	return l <= LocationFoot
}

// String returns the location name.
func (l BodySensorLocation) String() string {
	names := []string{"other", "chest", "wrist", "finger", "hand", "ear lobe", "foot"}
	if !l.Valid() {
		return "reserved"
	}
	return names[l]
}

// SensorContact is the skin contact state reported by a heart rate
// measurement's flags.
type SensorContact uint8

const (
	// ContactNotSupported means the sensor cannot detect contact.
	ContactNotSupported SensorContact = iota

	// ContactNotDetected means contact detection found no skin.
	ContactNotDetected

	// ContactDetected means the sensor is in contact.
	ContactDetected
)

// String returns the contact state name.
func (c SensorContact) String() string {
	switch c {
	case ContactNotDetected:
		return "not detected"
	case ContactDetected:
		return "detected"
	default:
		return "not supported"
	}
}
