package btuuid

import (
	"testing"
)

func TestParseSpellings(t *testing.T) {
	want := From16(0x2A19)

	spellings := []string{
		"2A19",
		"2a19",
		"0x2A19",
		"0x2a19",
		"00002a19",
		"00002a19-0000-1000-8000-00805f9b34fb",
		"00002A19-0000-1000-8000-00805F9B34FB",
	}
	for _, s := range spellings {
		t.Run(s, func(t *testing.T) {
			got, err := Parse(s)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", s, err)
			}
			if got != want {
				t.Errorf("Parse(%q) = %v, want %v", s, got, want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"", "0x", "zz19", "123456789", "not-a-uuid-at-all"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}

func TestShort(t *testing.T) {
	t.Run("Assigned16", func(t *testing.T) {
		u := From16(0x2A6E)
		n, ok := u.Short()
		if !ok || n != 0x2A6E {
			t.Errorf("Short() = %#x, %v; want 0x2a6e, true", n, ok)
		}
		if !u.Is16() {
			t.Error("Is16() = false for 16-bit assigned number")
		}
	})

	t.Run("Assigned32", func(t *testing.T) {
		u := From32(0x1234ABCD)
		n, ok := u.Short()
		if !ok || n != 0x1234ABCD {
			t.Errorf("Short() = %#x, %v; want 0x1234abcd, true", n, ok)
		}
		if u.Is16() {
			t.Error("Is16() = true for 32-bit assigned number")
		}
	})

	t.Run("VendorUUID", func(t *testing.T) {
		u := MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e")
		if _, ok := u.Short(); ok {
			t.Error("Short() should report false off the Bluetooth base")
		}
	})
}

func TestString(t *testing.T) {
	if s := From16(0x2A19).String(); s != "0x2A19" {
		t.Errorf("String() = %q, want 0x2A19", s)
	}
	if s := From32(0x0001_0000).String(); s != "0x00010000" {
		t.Errorf("String() = %q, want 0x00010000", s)
	}
	vendor := "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	if s := MustParse(vendor).String(); s != vendor {
		t.Errorf("String() = %q, want %q", s, vendor)
	}
}

func TestNormalizeAlias(t *testing.T) {
	cases := map[string]string{
		"Battery Level":   "battery_level",
		"battery-level":   "battery_level",
		"BATTERY_LEVEL":   "battery_level",
		" Battery Level ": "battery_level",
		"org.bluetooth.characteristic.battery_level": "org_bluetooth_characteristic_battery_level",
	}
	for in, want := range cases {
		if got := NormalizeAlias(in); got != want {
			t.Errorf("NormalizeAlias(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapKey(t *testing.T) {
	m := map[UUID]string{From16(0x2A19): "battery"}
	if m[MustParse("0x2A19")] != "battery" {
		t.Error("equal UUIDs should collide as map keys")
	}
}
