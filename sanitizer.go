package bigroot

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/bigroot/pkg/domain"
)

var (
	// DefaultMaxInputSize bounds one input line: a million digits is about
	// 3.3 million bits, already far beyond an interactive computation.
	DefaultMaxInputSize = 1 << 20
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "BIGROOT_MAX_INPUT_SIZE"
)

// SanitizeInput cleans one line of user input: it enforces the size limit,
// validates UTF-8 and strips control characters such as ESC left behind by
// arrow keys on a raw terminal.
func SanitizeInput(input string) (string, error) {
	limit := maxInputSize()
	if len(input) > limit {
		// Rejected rather than truncated: a cut number is a different number.
		return "", fmt.Errorf("input of %d bytes exceeds limit %d: %w", len(input), limit, domain.ErrInvalidArgument)
	}

	if !utf8.ValidString(input) {
		return "", fmt.Errorf("input contains invalid UTF-8 sequences: %w", domain.ErrInvalidArgument)
	}

	// Fast path: if no control chars, return as is.
	if strings.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
