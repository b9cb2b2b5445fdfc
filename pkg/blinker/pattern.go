package blinker

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidPattern = errors.New("invalid pattern")

// Pattern is a predefined blinking pattern. Each one uses DefaultPatternLength bits,
// except On which sets all 32 bits.
type Pattern uint32

const (
	On              Pattern = math.MaxUint32
	Off             Pattern = 0
	SpeedMax        Pattern = 0b01010101010101010101
	SpeedMedium     Pattern = 0b00110011001100110011
	SpeedSlow       Pattern = 0b00000111110000011111
	SpeedVerySlow   Pattern = 0b00000000001111111111
	OneShortFlash   Pattern = 0b00000000000000000001
	OneLongFlash    Pattern = 0b00000000000000000011
	TwoShortFlashes Pattern = 0b00000000010000000001
)

// Patterns lists the predefined patterns in a stable order.
var Patterns = []Pattern{
	On, Off, SpeedMax, SpeedMedium, SpeedSlow, SpeedVerySlow,
	OneShortFlash, OneLongFlash, TwoShortFlashes,
}

var patternNames = map[Pattern]string{
	On:              "on",
	Off:             "off",
	SpeedMax:        "speed_max",
	SpeedMedium:     "speed_medium",
	SpeedSlow:       "speed_slow",
	SpeedVerySlow:   "speed_very_slow",
	OneShortFlash:   "one_short_flash",
	OneLongFlash:    "one_long_flash",
	TwoShortFlashes: "two_short_flashes",
}

// Uint32 returns the raw bit field of the pattern.
func (p Pattern) Uint32() uint32 {
	return uint32(p)
}

func (p Pattern) String() string {
	if n, ok := patternNames[p]; ok {
		return n
	}
	return fmt.Sprintf("0x%08x", uint32(p))
}

// ParsePattern returns the predefined pattern with the given name, e.g. "two_short_flashes".
// Names are case-insensitive and "-" may be used instead of "_".
func ParsePattern(name string) (Pattern, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for p, s := range patternNames {
		if s == n {
			return p, nil
		}
	}
	return Off, fmt.Errorf("%w: unknown preset %q", ErrInvalidPattern, name)
}

// ParseBits converts a user defined bit string like "0b1011101" into a pattern
// and its length. The string is read as a binary literal: the rightmost digit is
// phase 0. The length is the number of digits.
func ParseBits(s string) (pattern uint32, length uint8, err error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0b"), "0B")
	s = strings.ReplaceAll(s, "_", "")

	if len(s) == 0 || len(s) > MaxPatternLength {
		return 0, 0, fmt.Errorf("%w: %d bits", ErrInvalidPattern, len(s))
	}

	for _, c := range s {
		pattern <<= 1
		switch c {
		case '1':
			pattern |= 1
		case '0':
		default:
			return 0, 0, fmt.Errorf("%w: invalid digit %q", ErrInvalidPattern, c)
		}
	}

	return pattern, uint8(len(s)), nil
}

// Parse accepts either the name of a predefined pattern or a bit string.
// For predefined patterns the length is DefaultPatternLength.
func Parse(s string) (pattern uint32, length uint8, err error) {
	if p, e := ParsePattern(s); e == nil {
		return p.Uint32(), DefaultPatternLength, nil
	}
	return ParseBits(s)
}
