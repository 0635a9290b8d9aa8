package medfloat

import (
	"errors"
	"math"
	"testing"
)

func TestSFloatSentinels(t *testing.T) {
	t.Run("NaN", func(t *testing.T) {
		v := DecodeSFloat(0x07FF)
		if !math.IsNaN(v) {
			t.Errorf("mantissa 2047 decoded to %v, want NaN", v)
		}
		if k := SFloatKind(0x07FF); k != KindNaN {
			t.Errorf("kind = %v, want nan", k)
		}
	})

	t.Run("PosInf", func(t *testing.T) {
		if v := DecodeSFloat(0x07FE); !math.IsInf(v, 1) {
			t.Errorf("got %v, want +Inf", v)
		}
	})

	t.Run("NegInf", func(t *testing.T) {
		if v := DecodeSFloat(0x0802); !math.IsInf(v, -1) {
			t.Errorf("got %v, want -Inf", v)
		}
	})

	t.Run("NRes", func(t *testing.T) {
		if v := DecodeSFloat(0x0800); !math.IsNaN(v) {
			t.Errorf("got %v, want NaN", v)
		}
		if k := SFloatKind(0x0800); k != KindNRes {
			t.Errorf("kind = %v, want nres", k)
		}
	})

	t.Run("Reserved", func(t *testing.T) {
		if v := DecodeSFloat(0x0801); !math.IsNaN(v) {
			t.Errorf("got %v, want NaN", v)
		}
		if k := SFloatKind(0x0801); k != KindReserved {
			t.Errorf("kind = %v, want reserved", k)
		}
	})

	// A sentinel must never surface as a finite number, whatever the
	// exponent bits say.
	t.Run("NeverFinite", func(t *testing.T) {
		for _, raw := range []uint16{0x07FF, 0x07FE, 0x0800, 0x0801, 0x0802} {
			for exp := uint16(0); exp < 16; exp++ {
				v := DecodeSFloat(exp<<12 | raw)
				if !math.IsNaN(v) && !math.IsInf(v, 0) {
					t.Fatalf("raw %#x exp %d decoded to finite %v", raw, exp, v)
				}
			}
		}
	})
}

func TestFloatSentinels(t *testing.T) {
	cases := []struct {
		raw  uint32
		kind Kind
	}{
		{0x7FFFFF, KindNaN},
		{0x7FFFFE, KindPosInf},
		{0x800000, KindNRes},
		{0x800001, KindReserved},
		{0x800002, KindNegInf},
	}
	for _, c := range cases {
		if k := FloatKind(c.raw); k != c.kind {
			t.Errorf("FloatKind(%#x) = %v, want %v", c.raw, k, c.kind)
		}
		v := DecodeFloat(c.raw)
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			t.Errorf("DecodeFloat(%#x) = %v, want non-finite", c.raw, v)
		}
	}
}

func TestSFloatDecode(t *testing.T) {
	cases := []struct {
		raw  uint16
		want float64
	}{
		{0x0000, 0},
		{0x0001, 1},
		{0x0048, 72},    // exponent 0, mantissa 72
		{0xF169, 36.1},  // exponent -1, mantissa 361
		{0xD271, 0.625}, // exponent -3, mantissa 625
		{0x1020, 320},   // exponent 1, mantissa 32
		{0x0FFF, -1},    // exponent 0, mantissa -1
		{0xFF06, -25.0}, // exponent -1, mantissa -250
	}
	for _, c := range cases {
		got := DecodeSFloat(c.raw)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("DecodeSFloat(%#04x) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestSFloatEncodeSentinels(t *testing.T) {
	if raw, err := EncodeSFloat(math.NaN()); err != nil || raw != 0x07FF {
		t.Errorf("EncodeSFloat(NaN) = %#x, %v; want 0x07ff", raw, err)
	}
	if raw, err := EncodeSFloat(math.Inf(1)); err != nil || raw != 0x07FE {
		t.Errorf("EncodeSFloat(+Inf) = %#x, %v; want 0x07fe", raw, err)
	}
	if raw, err := EncodeSFloat(math.Inf(-1)); err != nil || raw != 0x0802 {
		t.Errorf("EncodeSFloat(-Inf) = %#x, %v; want 0x0802", raw, err)
	}
}

func TestSFloatRoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 36.1, -40, 98.6, 0.001, 204.5, -204.5, 20450000000}
	for _, v := range values {
		raw, err := EncodeSFloat(v)
		if err != nil {
			t.Fatalf("EncodeSFloat(%v) failed: %v", v, err)
		}
		got := DecodeSFloat(raw)
		if math.Abs(got-v) > math.Abs(v)*1e-3+1e-12 {
			t.Errorf("round trip %v -> %#x -> %v", v, raw, got)
		}
	}
}

func TestSFloatEncodeRange(t *testing.T) {
	// Largest magnitude is 2045e7; anything beyond fails.
	if _, err := EncodeSFloat(3e10); !errors.Is(err, ErrValueRange) {
		t.Errorf("err = %v, want ErrValueRange", err)
	}
	if _, err := EncodeSFloat(-3e10); !errors.Is(err, ErrValueRange) {
		t.Errorf("err = %v, want ErrValueRange", err)
	}
}

func TestSFloatEncodeNeverEmitsSentinel(t *testing.T) {
	// 2047 sits inside a reserved code; the encoder must fall back to
	// a coarser exponent instead of emitting the NaN pattern.
	raw, err := EncodeSFloat(2047)
	if err != nil {
		t.Fatalf("EncodeSFloat(2047) failed: %v", err)
	}
	if k := SFloatKind(raw); k != KindFinite {
		t.Fatalf("EncodeSFloat(2047) emitted sentinel kind %v", k)
	}
	if got := DecodeSFloat(raw); math.Abs(got-2047) > 10 {
		t.Errorf("EncodeSFloat(2047) decodes to %v", got)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	values := []float64{0, 120.5, -0.00004, 8388605, 98.6, 1e10}
	for _, v := range values {
		raw, err := EncodeFloat(v)
		if err != nil {
			t.Fatalf("EncodeFloat(%v) failed: %v", v, err)
		}
		got := DecodeFloat(raw)
		if math.Abs(got-v) > math.Abs(v)*1e-6+1e-12 {
			t.Errorf("round trip %v -> %#x -> %v", v, raw, got)
		}
	}
}
