package domain

import (
	"encoding/json"
	"math/big"
	"time"
)

// Query describes one square-root request.
type Query struct {
	Input *big.Int

	// FractionalBits is the requested precision before rounding to the group width.
	FractionalBits uint64

	// Base is the output base, 2..36.
	Base int

	// Golden renders (1 + sqrt(Input)) / 2 instead of the root itself.
	Golden bool
}

// Report is a fully computed and rendered answer.
type Report struct {
	Input     *big.Int
	Bits      uint64
	ShiftBits uint
	Base      int
	Golden    bool
	Result    *SquareRootResult

	// Digits is the "integer.fraction" string. Empty for perfect squares.
	Digits string

	Cached  bool
	Elapsed time.Duration
}

// Perfect reports whether the input was a perfect square.
func (r *Report) Perfect() bool {
	return r.Result != nil && r.Result.IsPerfectSquare
}

type reportJSON struct {
	Input     string `json:"input"`
	Bits      uint64 `json:"bits"`
	ShiftBits uint   `json:"shift_bits"`
	Base      int    `json:"base"`
	Perfect   bool   `json:"perfect"`
	Root      string `json:"root,omitempty"`
	Digits    string `json:"digits,omitempty"`
	Golden    bool   `json:"golden,omitempty"`
	Cached    bool   `json:"cached"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// MarshalJSON encodes the report with big integers as decimal strings.
func (r Report) MarshalJSON() ([]byte, error) {
	out := reportJSON{
		Bits:      r.Bits,
		ShiftBits: r.ShiftBits,
		Base:      r.Base,
		Perfect:   r.Perfect(),
		Digits:    r.Digits,
		Golden:    r.Golden,
		Cached:    r.Cached,
		ElapsedMS: r.Elapsed.Milliseconds(),
	}
	if r.Input != nil {
		out.Input = r.Input.String()
	}
	if out.Perfect {
		out.Root = r.Result.IntegerPart.String()
	}
	return json.Marshal(out)
}
