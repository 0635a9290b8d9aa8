// Package version parses and compares characteristic dataset versions.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the dataset snapshot version embedded in this library.
const Current = "2024.1"

// Minimum is the oldest dataset version the registry accepts without a
// warning.
const Minimum = "2023.1"

// DatasetVersion represents a parsed "year.revision" dataset version.
type DatasetVersion struct {
	Year     uint16
	Revision uint16
}

// Parse parses a "year.revision" version string.
func Parse(s string) (DatasetVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return DatasetVersion{}, fmt.Errorf("invalid version %q: expected year.revision", s)
	}

	year, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return DatasetVersion{}, fmt.Errorf("invalid version %q: bad year component", s)
	}

	rev, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return DatasetVersion{}, fmt.Errorf("invalid version %q: bad revision component", s)
	}

	return DatasetVersion{Year: uint16(year), Revision: uint16(rev)}, nil
}

// String returns the version as "year.revision".
func (v DatasetVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Year, v.Revision)
}

// Compare returns -1, 0, or 1 ordering v against other.
func (v DatasetVersion) Compare(other DatasetVersion) int {
	switch {
	case v.Year != other.Year:
		if v.Year < other.Year {
			return -1
		}
		return 1
	case v.Revision != other.Revision:
		if v.Revision < other.Revision {
			return -1
		}
		return 1
	}
	return 0
}

// Supported reports whether a dataset version string parses and is not
// older than Minimum.
func Supported(s string) bool {
	v, err := Parse(s)
	if err != nil {
		return false
	}
	min, err := Parse(Minimum)
	if err != nil {
		return false
	}
	return v.Compare(min) >= 0
}
