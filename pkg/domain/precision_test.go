package domain

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestRoundBits(t *testing.T) {
	tests := []struct {
		bits  uint64
		shift uint
		want  uint64
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{63, 4, 64},
		{100, 8, 104},
		{5, 0, 5},
		{math.MaxUint64, 8, math.MaxUint64 - 7},
		{math.MaxUint64 - 3, 8, math.MaxUint64 - 7},
		{math.MaxUint64 - 7, 8, math.MaxUint64 - 7},
		{math.MaxUint64, 16, math.MaxUint64 - 15},
	}
	for _, tt := range tests {
		if got := RoundBits(tt.bits, tt.shift); got != tt.want {
			t.Errorf("RoundBits(%d, %d) = %d, want %d", tt.bits, tt.shift, got, tt.want)
		}
	}
}

func TestBitsForDigits(t *testing.T) {
	tests := []struct {
		digits uint64
		base   int
		want   uint64
	}{
		{0, 10, 0},
		{1, 2, 1},
		{10, 16, 40},
		{3, 10, 10},
		{1000, 10, 3322},
		{5, 36, 26},
		{math.MaxUint64, 36, math.MaxUint64},
		{math.MaxUint64 / 2, 16, math.MaxUint64},
	}
	for _, tt := range tests {
		if got := BitsForDigits(tt.digits, tt.base); got != tt.want {
			t.Errorf("BitsForDigits(%d, %d) = %d, want %d", tt.digits, tt.base, got, tt.want)
		}
	}
}

func TestResolveBits(t *testing.T) {
	if got := ResolveBits(64, 5, 10); got != 64 {
		t.Errorf("explicit bits ignored: got %d", got)
	}
	if got := ResolveBits(0, 10, 16); got != 40 {
		t.Errorf("digits not converted: got %d", got)
	}
	if got := ResolveBits(0, 0, 10); got != BitsForDigits(DefaultDigits, 10) {
		t.Errorf("default digits not applied: got %d", got)
	}
}

func TestValidation(t *testing.T) {
	for _, base := range []int{1, 0, -3, 37} {
		if err := ValidateBase(base); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ValidateBase(%d) = %v, want ErrInvalidArgument", base, err)
		}
	}
	for _, base := range []int{2, 10, 16, 36} {
		if err := ValidateBase(base); err != nil {
			t.Errorf("ValidateBase(%d) = %v", base, err)
		}
	}
	for _, shift := range []uint{0, 1, 3, 6, 32} {
		if err := ValidateShiftBits(shift); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ValidateShiftBits(%d) = %v, want ErrInvalidArgument", shift, err)
		}
	}
	if err := ValidateInput(big.NewInt(-1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative input accepted: %v", err)
	}
	if err := ValidateInput(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil input accepted: %v", err)
	}
	if err := ValidateInput(new(big.Int)); err != nil {
		t.Errorf("zero input rejected: %v", err)
	}
}
