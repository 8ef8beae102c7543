// Package convert renders fixed-point binary values as digit strings in bases 2..36.
package convert

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strings"

	"github.com/aretw0/bigroot/pkg/bigint"
	"github.com/aretw0/bigroot/pkg/domain"
)

// Option configures Render.
type Option func(*options)

type options struct {
	keepZeros bool
}

// WithTrailingZeros keeps insignificant trailing fractional zeros, as the older
// 4-bit revision printed them.
func WithTrailingZeros(keep bool) Option {
	return func(o *options) {
		o.keepZeros = keep
	}
}

// EstimateDigits returns an upper bound on the number of base digits needed to
// write a bitCount-bit value: floor(bitCount*log(2)/log(base)) + 1.
func EstimateDigits(bitCount uint64, base int) (int, error) {
	if err := domain.ValidateBase(base); err != nil {
		return 0, err
	}
	est := math.Floor(float64(bitCount)*math.Ln2/math.Log(float64(base))) + 1
	if est >= math.MaxInt32 {
		return 0, fmt.Errorf("%d bits need %.0f base-%d digits: %w", bitCount, est, base, domain.ErrAllocationFailure)
	}
	return int(est), nil
}

// FractionDigits bounds the fractional digits of a width-bit fraction. The
// fraction is viewed as occupying whole words, so base^limit >= 2^width always
// holds and no information is lost. Widths whose digits cannot be held fail
// with domain.ErrAllocationFailure.
func FractionDigits(width uint64, base int) (int, error) {
	words := width / domain.WordBits
	if width%domain.WordBits != 0 {
		words++
	}
	if words > math.MaxUint64/domain.WordBits {
		return 0, fmt.Errorf("fraction of %d bits: %w", width, domain.ErrAllocationFailure)
	}
	return EstimateDigits(words*domain.WordBits, base)
}

// Render writes integerPart + fractionalPart/2^fractionalBitWidth as
// "<integer digits>.<fraction digits>" in base.
//
// The integer part is written without padding ("0" for zero). Fractional digits
// stop once the fraction is exhausted or the digit limit is reached; trailing zeros
// are trimmed unless WithTrailingZeros(true) is given. The point is always present.
func Render(integerPart, fractionalPart *big.Int, fractionalBitWidth uint64, base int, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := domain.ValidateBase(base); err != nil {
		return "", err
	}
	if integerPart == nil {
		integerPart = new(big.Int)
	}
	if integerPart.Sign() < 0 || (fractionalPart != nil && fractionalPart.Sign() < 0) {
		return "", fmt.Errorf("negative fixed-point part: %w", domain.ErrInvalidArgument)
	}
	if fractionalPart != nil && fractionalPart.BitLen() > int(min(fractionalBitWidth, math.MaxInt32)) {
		return "", fmt.Errorf("fraction wider than %d bits: %w", fractionalBitWidth, domain.ErrInvalidArgument)
	}

	intEstimate, err := EstimateDigits(uint64(bigint.WordCount(integerPart))*domain.WordBits, base)
	if err != nil {
		return "", err
	}
	limit, err := FractionDigits(fractionalBitWidth, base)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(intEstimate + 1 + limit)

	writeInteger(&sb, integerPart, base)
	sb.WriteByte('.')

	if fractionalPart == nil || fractionalPart.Sign() == 0 {
		return sb.String(), nil
	}

	frac := make([]byte, 0, limit)
	w := new(big.Int).Set(fractionalPart)
	width := uint(fractionalBitWidth)
	for w.Sign() != 0 && len(frac) < limit {
		frac = append(frac, domain.Digits[bigint.MulOverflow(w, uint64(base), width)])
	}
	if !o.keepZeros {
		frac = trimZeros(frac)
	}
	sb.Write(frac)
	return sb.String(), nil
}

// Integer renders a non-negative integer in base.
func Integer(x *big.Int, base int) (string, error) {
	if err := domain.ValidateBase(base); err != nil {
		return "", err
	}
	if x == nil || x.Sign() < 0 {
		return "", fmt.Errorf("integer must be non-negative: %w", domain.ErrInvalidArgument)
	}
	var sb strings.Builder
	writeInteger(&sb, x, base)
	return sb.String(), nil
}

// writeInteger emits digits by repeated division. Each division takes out the
// largest power of base that fits in a word, yielding several digits at once.
func writeInteger(sb *strings.Builder, x *big.Int, base int) {
	if x.Sign() == 0 {
		sb.WriteByte('0')
		return
	}

	b := uint64(base)
	chunk, per := b, 1
	for hi, _ := bits.Mul64(chunk, b); hi == 0; hi, _ = bits.Mul64(chunk, b) {
		chunk *= b
		per++
	}
	divisor := new(big.Int).SetUint64(chunk)

	// digits are collected least significant first, then reversed
	v := new(big.Int).Set(x)
	rem := new(big.Int)
	var out []byte
	for v.Sign() != 0 {
		v.QuoRem(v, divisor, rem)
		r := rem.Uint64()
		for i := 0; i < per; i++ {
			out = append(out, domain.Digits[r%b])
			r /= b
			if v.Sign() == 0 && r == 0 {
				break
			}
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sb.Write(out)
}

func trimZeros(digits []byte) []byte {
	end := len(digits)
	for end > 0 && digits[end-1] == '0' {
		end--
	}
	return digits[:end]
}
