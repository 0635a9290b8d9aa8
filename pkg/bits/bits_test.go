package bits

import (
	"errors"
	"testing"
)

func TestMask(t *testing.T) {
	cases := []struct {
		start, width uint
		want         uint64
	}{
		{0, 1, 0x01},
		{0, 8, 0xFF},
		{4, 4, 0xF0},
		{12, 4, 0xF000},
		{0, 64, ^uint64(0)},
		{63, 1, 1 << 63},
	}
	for _, c := range cases {
		if got := Mask(c.start, c.width); got != c.want {
			t.Errorf("Mask(%d, %d) = %#x, want %#x", c.start, c.width, got, c.want)
		}
	}
}

func TestMaskPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Mask(60, 8) should panic")
		}
	}()
	Mask(60, 8)
}

func TestExtractSet(t *testing.T) {
	const v = uint64(0xCAFE)

	if got := Extract(v, 8, 8); got != 0xCA {
		t.Errorf("Extract high byte = %#x, want 0xca", got)
	}
	if got := Set(v, 0xBE, 8, 8); got != 0xBEFE {
		t.Errorf("Set high byte = %#x, want 0xbefe", got)
	}

	// Field bits above width are discarded.
	if got := Set(0, 0x1FF, 0, 8); got != 0xFF {
		t.Errorf("Set with oversized field = %#x, want 0xff", got)
	}
}

// Writing a field back to its own position must be the identity.
func TestSetExtractIdempotent(t *testing.T) {
	values := []uint64{0, 1, 0xA5A5A5A5, ^uint64(0), 1 << 63}
	for _, v := range values {
		for start := uint(0); start < 64; start += 7 {
			for width := uint(1); start+width <= 64; width += 5 {
				got := Set(v, Extract(v, start, width), start, width)
				if got != v {
					t.Fatalf("Set(Extract) not identity: v=%#x start=%d width=%d got=%#x", v, start, width, got)
				}
			}
		}
	}
}

func TestCheckVariants(t *testing.T) {
	if _, err := CheckExtract(0xFF, 4, 8, 8); !errors.Is(err, ErrFieldRange) {
		t.Errorf("CheckExtract out of range: err = %v, want ErrFieldRange", err)
	}
	got, err := CheckExtract(0xF0, 4, 4, 8)
	if err != nil || got != 0x0F {
		t.Errorf("CheckExtract(0xF0, 4, 4, 8) = %#x, %v", got, err)
	}
	if _, err := CheckSet(0, 1, 8, 1, 8); !errors.Is(err, ErrFieldRange) {
		t.Errorf("CheckSet out of range: err = %v, want ErrFieldRange", err)
	}
}

func TestSingleBitOps(t *testing.T) {
	var v uint64

	v = SetBit(v, 3)
	if v != 0x08 || !Test(v, 3) {
		t.Fatalf("SetBit: v = %#x", v)
	}
	v = ToggleBit(v, 0)
	if v != 0x09 {
		t.Fatalf("ToggleBit: v = %#x", v)
	}
	v = ClearBit(v, 3)
	if v != 0x01 || Test(v, 3) {
		t.Fatalf("ClearBit: v = %#x", v)
	}
}

func TestCounts(t *testing.T) {
	if got := OnesCount(0xF0F0); got != 8 {
		t.Errorf("OnesCount(0xF0F0) = %d, want 8", got)
	}
	if got := FirstSet(0xF0); got != 4 {
		t.Errorf("FirstSet(0xF0) = %d, want 4", got)
	}
	if got := LastSet(0xF0); got != 7 {
		t.Errorf("LastSet(0xF0) = %d, want 7", got)
	}
	if FirstSet(0) != -1 || LastSet(0) != -1 {
		t.Error("FirstSet/LastSet of zero should be -1")
	}
}

func TestRotate(t *testing.T) {
	if got := RotateLeft(0x81, 1, 8); got != 0x03 {
		t.Errorf("RotateLeft(0x81, 1, 8) = %#x, want 0x03", got)
	}
	if got := RotateRight(0x03, 1, 8); got != 0x81 {
		t.Errorf("RotateRight(0x03, 1, 8) = %#x, want 0x81", got)
	}
	if got := RotateLeft(0xA5, 8, 8); got != 0xA5 {
		t.Errorf("full rotation should be identity, got %#x", got)
	}
	if got := RotateLeft(0x01, -1, 8); got != 0x80 {
		t.Errorf("negative rotation = %#x, want 0x80", got)
	}
}

func TestSignExtend(t *testing.T) {
	cases := []struct {
		value uint64
		width uint
		want  int64
	}{
		{0x7FF, 12, 2047},
		{0x800, 12, -2048},
		{0xFFF, 12, -1},
		{0x0F, 4, -1},
		{0x07, 4, 7},
		{0xFF, 16, 255},
	}
	for _, c := range cases {
		if got := SignExtend(c.value, c.width); got != c.want {
			t.Errorf("SignExtend(%#x, %d) = %d, want %d", c.value, c.width, got, c.want)
		}
	}
}

func TestMergeSplit(t *testing.T) {
	fields := []Field{
		{Value: 0x5, Start: 0, Width: 4},
		{Value: 0x3, Start: 4, Width: 2},
		{Value: 0x1, Start: 6, Width: 1},
	}
	merged := Merge(fields...)
	if merged != 0x75 {
		t.Fatalf("Merge = %#x, want 0x75", merged)
	}
	parts := Split(merged, fields...)
	for i, f := range fields {
		if parts[i] != f.Value {
			t.Errorf("Split field %d = %#x, want %#x", i, parts[i], f.Value)
		}
	}
}
