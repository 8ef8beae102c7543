package bigint_test

import (
	"math/big"
	"testing"

	"github.com/aretw0/bigroot/pkg/bigint"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroups(t *testing.T) {
	x := big.NewInt(0x1abcd) // 17 bits

	assert.Equal(t, 0, bigint.GroupCount(new(big.Int), 8))
	assert.Equal(t, 3, bigint.GroupCount(x, 8))
	assert.Equal(t, 5, bigint.GroupCount(x, 4))

	// Groups are aligned to bit 0; the leading one is narrower.
	assert.Equal(t, uint64(0x01), bigint.Group(x, 0, 8))
	assert.Equal(t, uint64(0xab), bigint.Group(x, 1, 8))
	assert.Equal(t, uint64(0xcd), bigint.Group(x, 2, 8))

	var nibbles []uint64
	for i := 0; i < bigint.GroupCount(x, 4); i++ {
		nibbles = append(nibbles, bigint.Group(x, i, 4))
	}
	assert.Equal(t, []uint64{0x1, 0xa, 0xb, 0xc, 0xd}, nibbles)

	assert.Equal(t, uint64(0), bigint.Group(x, 3, 8), "out of range index reads as zero")
	assert.Equal(t, uint64(0), bigint.Group(x, -1, 8))
}

func TestGroups_Reassemble(t *testing.T) {
	x, ok := new(big.Int).SetString("999999999999999989123456789012345678901234567890", 10)
	require.True(t, ok)

	for _, width := range domain.SupportedShiftBits {
		back := new(big.Int)
		for i := 0; i < bigint.GroupCount(x, width); i++ {
			back.Lsh(back, width)
			back.Add(back, new(big.Int).SetUint64(bigint.Group(x, i, width)))
		}
		assert.Equal(t, 0, back.Cmp(x), "width %d", width)
	}
}

func TestMulOverflow(t *testing.T) {
	// 0.5 in 8 bits, times 10 -> digit 5, remainder 0
	frac := big.NewInt(128)
	assert.Equal(t, uint64(5), bigint.MulOverflow(frac, 10, 8))
	assert.Equal(t, int64(0), frac.Int64())

	// 106/256 = 0.4140625
	frac = big.NewInt(106)
	var digits []uint64
	for frac.Sign() != 0 {
		digits = append(digits, bigint.MulOverflow(frac, 10, 8))
	}
	assert.Equal(t, []uint64{4, 1, 4, 0, 6, 2, 5}, digits)

	// base 36 overflow digits stay below the base
	frac = big.NewInt(255)
	d := bigint.MulOverflow(frac, 36, 8)
	assert.Equal(t, uint64(35), d)
	assert.Equal(t, int64(255*36-35*256), frac.Int64())
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, bigint.WordCount(new(big.Int)))
	assert.Equal(t, 1, bigint.WordCount(big.NewInt(1)))
	assert.Equal(t, 1, bigint.WordCount(new(big.Int).Lsh(big.NewInt(1), 63)))
	assert.Equal(t, 2, bigint.WordCount(new(big.Int).Lsh(big.NewInt(1), 64)))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"4", "4"},
		{" 999999999999999989 ", "999999999999999989"},
		{"1_000_000", "1000000"},
		{"1e18", "1000000000000000000"},
		{"25E2", "2500"},
		{"1.5e1", "15"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := bigint.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "-4", "-1e3", "2.5", "abc", "0x10"} {
		_, err := bigint.Parse(in)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "input %q", in)
	}

	_, err := bigint.Parse("1e99999999")
	assert.ErrorIs(t, err, domain.ErrAllocationFailure)
}
