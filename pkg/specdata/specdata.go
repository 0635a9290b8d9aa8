// Package specdata loads the external characteristic specification
// dataset: the read-only, versioned registry of assigned numbers,
// names, units and value types the identifier registry is built from.
//
// A snapshot of the dataset ships embedded in the binary; integrators
// tracking a newer specification revision can load their own file with
// LoadCharacteristics and feed it to the registry instead.
package specdata

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed characteristics.yaml
var builtin []byte

// RawDataset is the top-level YAML document.
type RawDataset struct {
	Version         string              `yaml:"version"`
	Characteristics []RawCharacteristic `yaml:"characteristics"`
}

// RawCharacteristic is one dataset entry, as published.
type RawCharacteristic struct {
	// UUID is the assigned number or full 128-bit form.
	UUID string `yaml:"uuid"`

	// Name is the display name ("Battery Level").
	Name string `yaml:"name"`

	// Identifier is the specification identifier string
	// ("org.bluetooth.characteristic.battery_level").
	Identifier string `yaml:"identifier"`

	// Unit is the physical unit symbol, if any.
	Unit string `yaml:"unit"`

	// Type is the logical value type: float, int, uint, bool, string,
	// bytes, time, struct.
	Type string `yaml:"type"`

	// Properties lists the protocol operations the characteristic
	// supports (read, write, notify, indicate).
	Properties []string `yaml:"properties"`
}

// ParseCharacteristics parses a dataset from YAML bytes.
func ParseCharacteristics(data []byte) (*RawDataset, error) {
	var ds RawDataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing characteristic dataset: %w", err)
	}
	return &ds, nil
}

// LoadCharacteristics loads and parses a dataset file.
func LoadCharacteristics(path string) (*RawDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseCharacteristics(data)
}

// Builtin returns the embedded dataset snapshot.
func Builtin() (*RawDataset, error) {
	return ParseCharacteristics(builtin)
}
