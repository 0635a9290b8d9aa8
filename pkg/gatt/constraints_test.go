package gatt

import (
	"errors"
	"testing"
)

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var ce *CodecError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CodecError, got %T: %v", err, err)
	}
	return ce.Kind
}

func TestValidateInput(t *testing.T) {
	t.Run("ExactTooShort", func(t *testing.T) {
		err := ValidateInput(nil, Constraints{ExactLength: 1})
		if kindOf(t, err) != KindInsufficientData {
			t.Errorf("kind = %v, want insufficient_data", Classify(err))
		}
	})

	t.Run("ExactTooLong", func(t *testing.T) {
		err := ValidateInput([]byte{1, 2}, Constraints{ExactLength: 1})
		if kindOf(t, err) != KindLengthMismatch {
			t.Errorf("kind = %v, want length_mismatch", Classify(err))
		}
	})

	t.Run("VariableAllowsLonger", func(t *testing.T) {
		if err := ValidateInput([]byte{1, 2, 3}, Constraints{ExactLength: 1, Variable: true}); err != nil {
			t.Errorf("variable layout rejected longer buffer: %v", err)
		}
	})

	t.Run("MinMax", func(t *testing.T) {
		c := Constraints{MinLength: 2, MaxLength: 4}
		if err := ValidateInput([]byte{1}, c); kindOf(t, err) != KindInsufficientData {
			t.Error("below min should be insufficient_data")
		}
		if err := ValidateInput(make([]byte, 5), c); kindOf(t, err) != KindLengthMismatch {
			t.Error("above max should be length_mismatch")
		}
		if err := ValidateInput([]byte{1, 2, 3}, c); err != nil {
			t.Errorf("in-range length rejected: %v", err)
		}
	})

	t.Run("ZeroValueUnconstrained", func(t *testing.T) {
		if err := ValidateInput(nil, Constraints{}); err != nil {
			t.Errorf("zero constraints rejected empty buffer: %v", err)
		}
	})
}

func TestValidateOutput(t *testing.T) {
	t.Run("Range", func(t *testing.T) {
		c := Constraints{MinValue: Float64(0), MaxValue: Float64(100)}
		if err := ValidateOutput(float64(50), c); err != nil {
			t.Errorf("in-range value rejected: %v", err)
		}
		if err := ValidateOutput(float64(101), c); kindOf(t, err) != KindValueRange {
			t.Error("above max should be value_range")
		}
		if err := ValidateOutput(-1, c); kindOf(t, err) != KindValueRange {
			t.Error("below min should be value_range")
		}
	})

	t.Run("Type", func(t *testing.T) {
		if err := ValidateOutput("hello", Constraints{Kind: ValueFloat}); kindOf(t, err) != KindTypeMismatch {
			t.Error("string as float should be type_mismatch")
		}
		if err := ValidateOutput(uint8(7), Constraints{Kind: ValueUint}); err != nil {
			t.Errorf("uint8 as uint rejected: %v", err)
		}
		if err := ValidateOutput([]byte{1}, Constraints{Kind: ValueBytes}); err != nil {
			t.Errorf("bytes rejected: %v", err)
		}
	})

	t.Run("NilPasses", func(t *testing.T) {
		if err := ValidateOutput(nil, Constraints{Kind: ValueFloat}); err != nil {
			t.Errorf("nil value rejected: %v", err)
		}
	})
}
