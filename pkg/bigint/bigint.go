// Package bigint adds the digit-level capabilities the square-root engine and the
// base converter need on top of math/big.
package bigint

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/shopspring/decimal"
)

// GroupCount returns the number of width-bit groups needed to hold x.
// Zero has no groups.
func GroupCount(x *big.Int, width uint) int {
	if width == 0 {
		return 0
	}
	n := uint(x.BitLen())
	return int((n + width - 1) / width)
}

// Group returns the index-th width-bit group of x counted from the most-significant
// end. Groups are aligned to bit 0, so group 0 may be narrower than width.
// width must not exceed 64.
func Group(x *big.Int, index int, width uint) uint64 {
	count := GroupCount(x, width)
	if index < 0 || index >= count {
		return 0
	}
	offset := uint(count-1-index) * width

	var g uint64
	for i := int(width) - 1; i >= 0; i-- {
		g = g<<1 | uint64(x.Bit(int(offset)+i))
	}
	return g
}

// MulOverflow treats frac as a width-bit binary fraction, multiplies it by base and
// returns the digit that overflowed past the binary point. frac is left holding the
// remaining width-bit fraction.
func MulOverflow(frac *big.Int, base uint64, width uint) uint64 {
	frac.Mul(frac, new(big.Int).SetUint64(base))
	digit := new(big.Int).Rsh(frac, width)

	// Clear everything at or above bit width.
	mask := new(big.Int).Lsh(big.NewInt(1), width)
	mask.Sub(mask, big.NewInt(1))
	frac.And(frac, mask)

	return digit.Uint64()
}

// WordCount returns the number of domain.WordBits-wide words needed to hold x.
func WordCount(x *big.Int) int {
	return (x.BitLen() + domain.WordBits - 1) / domain.WordBits
}

// maxExponent bounds exponent notation so "1e999999999" cannot exhaust memory.
const maxExponent = 1 << 24

// Parse reads a non-negative integer. It accepts plain decimal digits, "_" digit
// separators and exponent notation whose value is integral ("1e18", "25E2").
func Parse(s string) (*big.Int, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if clean == "" {
		return nil, fmt.Errorf("empty number: %w", domain.ErrInvalidArgument)
	}

	if n, ok := new(big.Int).SetString(clean, 10); ok {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative number %q: %w", s, domain.ErrInvalidArgument)
		}
		return n, nil
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %v: %w", s, err, domain.ErrInvalidArgument)
	}
	if d.Exponent() > maxExponent {
		return nil, fmt.Errorf("exponent of %q too large: %w", s, domain.ErrAllocationFailure)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("negative number %q: %w", s, domain.ErrInvalidArgument)
	}
	if !d.Equal(d.Truncate(0)) {
		return nil, fmt.Errorf("number %q is not an integer: %w", s, domain.ErrInvalidArgument)
	}
	return d.BigInt(), nil
}
