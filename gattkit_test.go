package gattkit_test

import (
	"math"
	"testing"

	gattkit "github.com/gattkit/gattkit-go"
	"github.com/gattkit/gattkit-go/pkg/btuuid"
	"github.com/gattkit/gattkit-go/pkg/gatt"
	"github.com/gattkit/gattkit-go/pkg/registry"
)

func TestParseAcceptsEverySpelling(t *testing.T) {
	spellings := []string{
		"0x2A19",
		"2A19",
		"00002a19-0000-1000-8000-00805f9b34fb",
		"Battery Level",
		"battery_level",
		"org.bluetooth.characteristic.battery_level",
	}
	for _, id := range spellings {
		res := gattkit.Parse(id, []byte{0x64}, nil, gatt.ParseOptions{})
		if !res.OK {
			t.Fatalf("%q: %v", id, res.Err())
		}
		if v, _ := res.Value.(uint8); v != 100 {
			t.Fatalf("%q: value = %v", id, res.Value)
		}
		if res.UUID != btuuid.From16(0x2A19) {
			t.Fatalf("%q: uuid = %s", id, res.UUID)
		}
	}
}

func TestParseUnknownIdentifier(t *testing.T) {
	res := gattkit.Parse("no such characteristic", []byte{1}, nil, gatt.ParseOptions{})
	if res.OK {
		t.Fatal("parse of unknown identifier succeeded")
	}
	if res.Kind != gatt.KindUUIDResolution {
		t.Fatalf("kind = %v, want %v", res.Kind, gatt.KindUUIDResolution)
	}
}

func TestParseTrace(t *testing.T) {
	res := gattkit.Parse("0x2A19", []byte{0x2A}, nil, gatt.ParseOptions{Trace: true})
	if !res.OK {
		t.Fatalf("parse: %v", res.Err())
	}
	if len(res.Trace) == 0 {
		t.Fatal("trace is empty with tracing enabled")
	}
}

func TestParseBatchEndToEnd(t *testing.T) {
	results, err := gattkit.ParseBatch(map[string][]byte{
		"Digital":   {0x09},
		"0x2A58":    {0x34, 0x12},
		"Aggregate": {0x09, 0xFF, 0x00},
		"2A19":      {0x55},
	}, nil, gatt.ParseOptions{})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	for id, res := range results {
		if !res.OK {
			t.Fatalf("%q failed: %v", id, res.Err())
		}
	}
}

func TestBuildRoundTrip(t *testing.T) {
	buf, err := gattkit.Build("Temperature", 24.04)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(buf) != 2 || buf[0] != 0x64 || buf[1] != 0x09 {
		t.Fatalf("built %x", buf)
	}
	res := gattkit.Parse("0x2A6E", buf, nil, gatt.ParseOptions{})
	if !res.OK {
		t.Fatalf("reparse: %v", res.Err())
	}
	if v, _ := res.Float(); math.Abs(v-24.04) > 1e-9 {
		t.Fatalf("value = %v", res.Value)
	}
}

type vendorModeChar struct {
	gatt.Base
}

func (v *vendorModeChar) Decode(buf []byte, ctx *gatt.Context) (any, error) {
	return buf[0], nil
}

func TestRegisterCustomVendor(t *testing.T) {
	u := btuuid.MustParse("f0001234-0004-4000-8000-c0ffee000001")
	ch := &vendorModeChar{Base: gatt.Base{
		CharUUID: u,
		CharName: "Vendor Mode",
		Constr:   gatt.Constraints{ExactLength: 1, Kind: gatt.ValueUint},
	}}

	err := gattkit.RegisterCustom(ch, registry.Metadata{
		UUID: u,
		Name: "Vendor Mode",
	}, false)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res := gattkit.Parse(u.String(), []byte{0x07}, nil, gatt.ParseOptions{})
	if !res.OK {
		t.Fatalf("parse custom: %v", res.Err())
	}
	if v, _ := res.Value.(uint8); v != 7 {
		t.Fatalf("value = %v", res.Value)
	}

	if m, ok := gattkit.ResolveMetadata("vendor_mode"); !ok || !m.Custom {
		t.Fatalf("metadata: %+v ok=%v", m, ok)
	}

	// Same identifier again without override collides.
	err = gattkit.RegisterCustom(ch, registry.Metadata{UUID: u, Name: "Vendor Mode"}, false)
	if err == nil {
		t.Fatal("duplicate registration succeeded without override")
	}
	if err := gattkit.RegisterCustom(ch, registry.Metadata{UUID: u, Name: "Vendor Mode v2"}, true); err != nil {
		t.Fatalf("override: %v", err)
	}
	if m, _ := gattkit.ResolveMetadata(u.String()); m.Name != "Vendor Mode v2" {
		t.Fatalf("metadata after override: %+v", m)
	}
}
