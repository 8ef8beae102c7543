package bigroot_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/bigroot"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Digits", "999999999999999989", "999999999999999989"},
		{"Safe Controls", "12\t34\r\n", "12\t34\r\n"},
		{"Escape", "\x1b2", "2"},
		{"Null Byte", "1\x0000", "100"},
		{"Bell", "4\x07", "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bigroot.SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeInput_Limits(t *testing.T) {
	_, err := bigroot.SanitizeInput("\xbd\xb2\x3d\xbc")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	t.Setenv(bigroot.EnvMaxInputSize, "10")
	_, err = bigroot.SanitizeInput("12345678901")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = bigroot.SanitizeInput("1234567890")
	assert.NoError(t, err)
}

func TestRunner_SanitizesLines(t *testing.T) {
	calc, err := bigroot.New()
	require.NoError(t, err)

	var out bytes.Buffer
	r := bigroot.NewRunner(strings.NewReader("\x1b1\x006\n"), &out)
	require.NoError(t, r.Run(context.Background(), calc, domain.Query{}, nil))
	assert.Equal(t, "16 = 4^2\n", out.String())

	t.Setenv(bigroot.EnvMaxInputSize, "4")
	out.Reset()
	r = bigroot.NewRunner(strings.NewReader("16\n123456789\n"), &out)
	err = r.Run(context.Background(), calc, domain.Query{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, "16 = 4^2\n", out.String())
}
