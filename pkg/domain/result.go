package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// SquareRootResult is the outcome of one engine call.
//
// When IsPerfectSquare is true, IntegerPart is the exact root and FractionalPart is nil.
// Otherwise the value is IntegerPart + FractionalPart / 2^FractionalBitWidth, truncated
// toward zero.
type SquareRootResult struct {
	IntegerPart        *big.Int
	FractionalPart     *big.Int
	FractionalBitWidth uint64
	IsPerfectSquare    bool
}

// Fraction returns the fractional part, or zero for perfect squares.
func (r *SquareRootResult) Fraction() *big.Int {
	if r.IsPerfectSquare || r.FractionalPart == nil {
		return new(big.Int)
	}
	return r.FractionalPart
}

// Clone returns a deep copy so stores and callers never share big.Int storage.
func (r *SquareRootResult) Clone() *SquareRootResult {
	if r == nil {
		return nil
	}
	c := &SquareRootResult{
		FractionalBitWidth: r.FractionalBitWidth,
		IsPerfectSquare:    r.IsPerfectSquare,
	}
	if r.IntegerPart != nil {
		c.IntegerPart = new(big.Int).Set(r.IntegerPart)
	}
	if r.FractionalPart != nil {
		c.FractionalPart = new(big.Int).Set(r.FractionalPart)
	}
	return c
}

// Scaled returns IntegerPart*2^FractionalBitWidth + FractionalPart, i.e. the result
// as a single integer in units of 2^-FractionalBitWidth.
func (r *SquareRootResult) Scaled() *big.Int {
	v := new(big.Int).Lsh(r.IntegerPart, uint(r.FractionalBitWidth))
	return v.Add(v, r.Fraction())
}

type resultJSON struct {
	IntegerPart        string `json:"integer_part"`
	FractionalPart     string `json:"fractional_part,omitempty"`
	FractionalBitWidth uint64 `json:"fractional_bit_width"`
	IsPerfectSquare    bool   `json:"is_perfect_square"`
}

// MarshalJSON encodes big integers as decimal strings.
func (r SquareRootResult) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		FractionalBitWidth: r.FractionalBitWidth,
		IsPerfectSquare:    r.IsPerfectSquare,
	}
	if r.IntegerPart != nil {
		out.IntegerPart = r.IntegerPart.String()
	}
	if r.FractionalPart != nil {
		out.FractionalPart = r.FractionalPart.String()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the representation produced by MarshalJSON.
func (r *SquareRootResult) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	ip, ok := new(big.Int).SetString(in.IntegerPart, 10)
	if !ok {
		return fmt.Errorf("integer_part %q: %w", in.IntegerPart, ErrInvalidArgument)
	}
	r.IntegerPart = ip
	r.FractionalPart = nil
	if in.FractionalPart != "" {
		fp, ok := new(big.Int).SetString(in.FractionalPart, 10)
		if !ok {
			return fmt.Errorf("fractional_part %q: %w", in.FractionalPart, ErrInvalidArgument)
		}
		r.FractionalPart = fp
	}
	r.FractionalBitWidth = in.FractionalBitWidth
	r.IsPerfectSquare = in.IsPerfectSquare
	return nil
}
