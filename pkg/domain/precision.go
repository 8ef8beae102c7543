package domain

import (
	"fmt"
	"math"
	"math/big"
	"slices"
)

// ValidateBase returns ErrInvalidArgument for bases outside MinBase..MaxBase.
func ValidateBase(base int) error {
	if base < MinBase || base > MaxBase {
		return fmt.Errorf("base %d outside %d..%d: %w", base, MinBase, MaxBase, ErrInvalidArgument)
	}
	return nil
}

// ValidateShiftBits returns ErrInvalidArgument for unsupported digit-group widths.
func ValidateShiftBits(shift uint) error {
	if !slices.Contains(SupportedShiftBits, shift) {
		return fmt.Errorf("shift bits %d not one of %v: %w", shift, SupportedShiftBits, ErrInvalidArgument)
	}
	return nil
}

// ValidateInput rejects nil and negative inputs.
func ValidateInput(n *big.Int) error {
	if n == nil {
		return fmt.Errorf("missing input: %w", ErrInvalidArgument)
	}
	if n.Sign() < 0 {
		return fmt.Errorf("negative input %s: %w", n, ErrInvalidArgument)
	}
	return nil
}

// RoundBits rounds bits up to the next multiple of shift. Values with no
// representable multiple above them saturate at the largest one below.
func RoundBits(bits uint64, shift uint) uint64 {
	s := uint64(shift)
	if s == 0 {
		return bits
	}
	if bits > math.MaxUint64-s+1 {
		return math.MaxUint64 / s * s
	}
	return (bits + s - 1) / s * s
}

// BitsForDigits returns the number of fractional bits needed for digits output
// digits in base: ceil(digits * log2(base)).
func BitsForDigits(digits uint64, base int) uint64 {
	if digits == 0 || base < MinBase {
		return 0
	}
	bits := math.Ceil(float64(digits) * math.Log2(float64(base)))
	// float64(MaxUint64) rounds up to 2^64, which does not convert.
	if bits >= float64(math.MaxUint64) {
		return math.MaxUint64
	}
	return uint64(bits)
}

// ResolveBits picks the fractional precision from explicit bits, or from digits,
// or from DefaultDigits when neither is set.
func ResolveBits(bits, digits uint64, base int) uint64 {
	if bits > 0 {
		return bits
	}
	if digits == 0 {
		digits = DefaultDigits
	}
	return BitsForDigits(digits, base)
}
