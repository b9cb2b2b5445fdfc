package blinker

import (
	"errors"
	"testing"
)

func TestParsePattern(t *testing.T) {
	for _, p := range Patterns {
		got, err := ParsePattern(p.String())
		if err != nil {
			t.Errorf("ParsePattern(%q) returned error: %v", p.String(), err)
			continue
		}
		if got != p {
			t.Errorf("ParsePattern(%q) = %v, want %v", p.String(), got, p)
		}
	}

	if got, err := ParsePattern(" Two-Short-Flashes "); err != nil || got != TwoShortFlashes {
		t.Errorf("ParsePattern() = %v, %v, want %v", got, err, TwoShortFlashes)
	}

	if _, err := ParsePattern("disco"); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("ParsePattern(disco) error = %v, want ErrInvalidPattern", err)
	}
}

func TestParseBits(t *testing.T) {
	tests := []struct {
		in      string
		pattern uint32
		length  uint8
		wantErr bool
	}{
		{in: "0b101", pattern: 0b101, length: 3},
		{in: "0011", pattern: 0b11, length: 4},
		{in: "1_0111_0", pattern: 0b101110, length: 6},
		{in: "11111111111111111111111111111111", pattern: 0xffffffff, length: 32},
		{in: "111111111111111111111111111111111", wantErr: true},
		{in: "0b", wantErr: true},
		{in: "", wantErr: true},
		{in: "0b102", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, l, err := ParseBits(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPattern) {
					t.Errorf("ParseBits(%q) error = %v, want ErrInvalidPattern", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBits(%q) returned error: %v", tt.in, err)
			}
			if p != tt.pattern || l != tt.length {
				t.Errorf("ParseBits(%q) = %b/%d, want %b/%d", tt.in, p, l, tt.pattern, tt.length)
			}
		})
	}
}

func TestParse(t *testing.T) {
	p, l, err := Parse("speed_slow")
	if err != nil || p != SpeedSlow.Uint32() || l != DefaultPatternLength {
		t.Errorf("Parse(speed_slow) = %b/%d, %v", p, l, err)
	}

	p, l, err = Parse("0b1")
	if err != nil || p != 1 || l != 1 {
		t.Errorf("Parse(0b1) = %b/%d, %v", p, l, err)
	}
}

func TestPattern_String(t *testing.T) {
	if s := Pattern(0x5).String(); s != "0x00000005" {
		t.Errorf("String() = %q", s)
	}
	if s := SpeedMedium.String(); s != "speed_medium" {
		t.Errorf("String() = %q", s)
	}
}
