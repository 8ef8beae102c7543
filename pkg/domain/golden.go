package domain

import (
	"fmt"
	"math/big"
)

// Golden returns (1 + x) / 2 for the approximate root x held in r.
//
// The fraction gains one bit: halving moves the low bit of the integer part
// into the top of the fraction. Applied to sqrt(5) this yields the golden ratio.
func Golden(r *SquareRootResult) (*SquareRootResult, error) {
	if r == nil || r.IntegerPart == nil {
		return nil, fmt.Errorf("golden: missing result: %w", ErrInvalidArgument)
	}
	if r.IsPerfectSquare {
		return nil, fmt.Errorf("golden: perfect square has no fraction: %w", ErrInvalidArgument)
	}

	width := r.FractionalBitWidth
	sum := new(big.Int).Add(r.IntegerPart, big.NewInt(1))

	frac := new(big.Int).Set(r.Fraction())
	if sum.Bit(0) == 1 {
		frac.SetBit(frac, int(width), 1)
	}

	return &SquareRootResult{
		IntegerPart:        sum.Rsh(sum, 1),
		FractionalPart:     frac,
		FractionalBitWidth: width + 1,
	}, nil
}
