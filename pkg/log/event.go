package log

import (
	"time"
)

// Event represents one codec event: a registry load, a decode or
// encode, or a warning. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"2,keyasint"`

	// UUID is the characteristic identifier, when the event concerns
	// one ("0x2A19" or long form).
	UUID string `cbor:"3,keyasint,omitempty"`

	// Name is the characteristic display name, when resolved.
	Name string `cbor:"4,keyasint,omitempty"`

	// OK reports whether the operation succeeded.
	OK bool `cbor:"5,keyasint,omitempty"`

	// ErrorKind is the failure classification name, when failed.
	ErrorKind string `cbor:"6,keyasint,omitempty"`

	// Message is the human-readable detail.
	Message string `cbor:"7,keyasint,omitempty"`

	// Size is the raw payload size in bytes, for decode/encode events.
	Size int `cbor:"8,keyasint,omitempty"`

	// Entries is the number of dataset or batch entries, for load and
	// batch events.
	Entries int `cbor:"9,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRegistryLoad is the one-time specification load.
	CategoryRegistryLoad Category = 0

	// CategoryRegistryWarning is a degraded-load or registration issue.
	CategoryRegistryWarning Category = 1

	// CategoryDecode is a characteristic parse.
	CategoryDecode Category = 2

	// CategoryEncode is a characteristic build.
	CategoryEncode Category = 3

	// CategoryBatch is a batch decode.
	CategoryBatch Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRegistryLoad:
		return "registry_load"
	case CategoryRegistryWarning:
		return "registry_warning"
	case CategoryDecode:
		return "decode"
	case CategoryEncode:
		return "encode"
	case CategoryBatch:
		return "batch"
	default:
		return "unknown"
	}
}
