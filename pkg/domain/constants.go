package domain

// Output base bounds. Digits above 9 use the lowercase letters a..z.
const (
	MinBase     = 2
	MaxBase     = 36
	DefaultBase = 10
)

// DefaultShiftBits is the width of one digit group consumed per engine iteration.
// Each group yields DefaultShiftBits/2 bits of the root.
const DefaultShiftBits = 8

// LegacyShiftBits is the group width used by the older 4-bit revision.
const LegacyShiftBits = 4

// DefaultDigits is the number of output digits requested when neither bits nor
// digits are given.
const DefaultDigits = 1000

// WordBits is the storage word width used by digit estimates.
// Fixed at 64 so the rendered output does not depend on the host architecture.
const WordBits = 64

// SupportedShiftBits lists the digit-group widths accepted by the engine.
var SupportedShiftBits = []uint{2, 4, 8, 16}

// Digits is the digit alphabet shared by every base.
const Digits = "0123456789abcdefghijklmnopqrstuvwxyz"
