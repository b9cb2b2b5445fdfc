package blinker

import (
	"math"
	"testing"

	"ledblinker/pkg/port"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level ActiveLevel
		want  port.Level
	}{
		{name: "active high", level: ActiveHigh, want: port.Low},
		{name: "active low", level: ActiveLow, want: port.High},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePin{pin: 17}
			b := New(p, tt.level, &fakeClock{})

			if !p.output {
				t.Error("pin is not set as output")
			}
			if !p.writtenBeforeOutput {
				t.Error("off level must be written before the pin turns into an output")
			}
			if len(p.writes) != 1 || p.writes[0] != tt.want {
				t.Errorf("writes = %v, want [%v]", p.writes, tt.want)
			}

			if b.Pin() != 17 || b.ActiveLevel() != tt.level {
				t.Errorf("Pin() = %d, ActiveLevel() = %v, want 17, %v", b.Pin(), b.ActiveLevel(), tt.level)
			}
			if b.PhaseTime() != DefaultPhaseTime {
				t.Errorf("PhaseTime() = %d, want %d", b.PhaseTime(), DefaultPhaseTime)
			}
			if pat, l := b.Pattern(); pat != 0 || l != DefaultPatternLength {
				t.Errorf("Pattern() = %b/%d, want 0/%d", pat, l, DefaultPatternLength)
			}
			if b.LedState() {
				t.Error("LedState() = true, want false")
			}
		})
	}
}

func TestSetPattern_InvalidLength(t *testing.T) {
	for _, length := range []uint8{0, 33, 64, 255} {
		b := New(&fakePin{}, ActiveHigh, &fakeClock{})
		b.SetPhaseTime(0)
		b.SetPattern(0b101, 3)
		b.Update()

		b.SetPattern(0b11, length)

		if pat, l := b.Pattern(); pat != 0b101 || l != 3 {
			t.Errorf("length %d: Pattern() = %b/%d, want 101/3", length, pat, l)
		}
		if b.Phase() != 1 {
			t.Errorf("length %d: Phase() = %d, want 1", length, b.Phase())
		}
	}
}

func TestSetPattern_ResetsPhase(t *testing.T) {
	tests := []struct {
		name    string
		pattern uint32
		length  uint8
	}{
		{name: "new pattern", pattern: 0b110, length: 3},
		{name: "new length", pattern: 0b101, length: 4},
		{name: "both", pattern: 0xff, length: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(&fakePin{}, ActiveHigh, &fakeClock{})
			b.SetPhaseTime(0)
			b.SetPattern(0b101, 3)
			b.Update()
			b.Update()

			b.SetPattern(tt.pattern, tt.length)
			if b.Phase() != 0 {
				t.Errorf("Phase() = %d, want 0", b.Phase())
			}
		})
	}
}

func TestSetPattern_SameKeepsPhase(t *testing.T) {
	b := New(&fakePin{}, ActiveHigh, &fakeClock{})
	b.SetPhaseTime(0)
	b.SetPattern(0b1101, 4)
	b.Update()
	b.Update()

	b.SetPattern(0b1101, 4)
	if b.Phase() != 2 {
		t.Fatalf("Phase() = %d, want 2", b.Phase())
	}

	b.Update()
	if b.Phase() != 3 {
		t.Errorf("Phase() = %d, want 3", b.Phase())
	}
}

func TestUpdate_PhaseTime(t *testing.T) {
	c := &fakeClock{}
	b := New(&fakePin{}, ActiveHigh, c)
	b.SetPattern(0b101, 3)
	b.SetPhaseTime(100)

	steps := []struct {
		now   uint32
		phase uint8
	}{
		{now: 0, phase: 0},
		{now: 50, phase: 0},
		{now: 100, phase: 1},
		{now: 150, phase: 1},
		{now: 199, phase: 1},
		{now: 250, phase: 2},
		{now: 349, phase: 2},
		{now: 350, phase: 0},
	}

	for _, s := range steps {
		c.now = s.now
		b.Update()
		if b.Phase() != s.phase {
			t.Errorf("t=%d: Phase() = %d, want %d", s.now, b.Phase(), s.phase)
		}
	}
}

func TestUpdate_ClockWrapAround(t *testing.T) {
	c := &fakeClock{now: math.MaxUint32 - 15}
	b := New(&fakePin{}, ActiveHigh, c)
	b.SetPattern(0b01, 2)
	b.SetPhaseTime(100)

	c.now = 80 // 96ms elapsed
	b.Update()
	if b.Phase() != 0 {
		t.Fatalf("Phase() = %d after 96ms, want 0", b.Phase())
	}

	c.now = 84 // 100ms elapsed
	b.Update()
	if b.Phase() != 1 {
		t.Fatalf("Phase() = %d after 100ms, want 1", b.Phase())
	}
	if !b.LedState() {
		t.Error("LedState() = false, want true")
	}
}

func TestSetPhaseTime_RestartsWindow(t *testing.T) {
	c := &fakeClock{now: 1000}
	b := New(&fakePin{}, ActiveHigh, c)
	b.SetPattern(0b01, 2)

	// the initial time base is zero, the first update is due
	b.Update()
	if b.Phase() != 1 {
		t.Fatalf("Phase() = %d, want 1", b.Phase())
	}

	c.now = 1090
	b.SetPhaseTime(100)
	c.now = 1150
	b.Update()
	if b.Phase() != 1 {
		t.Errorf("Phase() = %d, want 1 (window restarted at 1090)", b.Phase())
	}

	c.now = 1190
	b.Update()
	if b.Phase() != 0 {
		t.Errorf("Phase() = %d, want 0", b.Phase())
	}
}

func TestUpdate_ZeroPhaseTime(t *testing.T) {
	b := New(&fakePin{}, ActiveHigh, &fakeClock{})
	b.SetPhaseTime(0)
	b.SetPattern(0b10000, 5)

	for i := 1; i <= 12; i++ {
		b.Update()
		if want := uint8(i % 5); b.Phase() != want {
			t.Errorf("update %d: Phase() = %d, want %d", i, b.Phase(), want)
		}
	}
}

func TestUpdate_Sequence(t *testing.T) {
	tests := []struct {
		name  string
		level ActiveLevel
		on    port.Level
	}{
		{name: "active high", level: ActiveHigh, on: port.High},
		{name: "active low", level: ActiveLow, on: port.Low},
	}

	want := []bool{true, false, true, true, false, true, true}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePin{}
			b := New(p, tt.level, &fakeClock{})
			b.SetPhaseTime(0)
			b.SetPattern(0b101, 3)

			for i, w := range want {
				b.Update()
				if b.LedState() != w {
					t.Errorf("update %d: LedState() = %v, want %v", i, b.LedState(), w)
				}
				if on := p.level == tt.on; on != w {
					t.Errorf("update %d: pin level = %v, LED on = %v, want %v", i, p.level, on, w)
				}
			}
		})
	}
}

func TestUpdate_NoRedundantWrite(t *testing.T) {
	p := &fakePin{}
	b := New(p, ActiveHigh, &fakeClock{})
	b.SetPhaseTime(0)
	b.SetPattern(0b0011, 4)

	// constructor writes once
	writes := []int{1, 1, 2, 2, 3, 3, 4, 4}
	for i, w := range writes {
		b.Update()
		if len(p.writes) != w+1 {
			t.Errorf("update %d: %d writes, want %d", i, len(p.writes)-1, w)
		}
	}
}

func TestSetOn(t *testing.T) {
	p := &fakePin{}
	b := New(p, ActiveLow, &fakeClock{})
	b.SetPhaseTime(0)
	b.SetOn()

	for i := 0; i < 2*DefaultPatternLength; i++ {
		b.Update()
		if !b.LedState() {
			t.Fatalf("update %d: LedState() = false, want true", i)
		}
	}
	if p.level != port.Low {
		t.Errorf("pin level = %v, want low", p.level)
	}
	// one write in New, one when the LED switched on
	if len(p.writes) != 2 {
		t.Errorf("%d writes, want 2", len(p.writes))
	}

	b.SetOff()
	b.Update()
	if b.LedState() || p.level != port.High {
		t.Errorf("after SetOff: LedState() = %v, level = %v", b.LedState(), p.level)
	}
}

func TestStatus(t *testing.T) {
	b := New(&fakePin{pin: 4}, ActiveLow, &fakeClock{})
	b.SetPhaseTime(0)
	b.SetPreset(SpeedMax, DefaultPatternLength)
	b.Update()

	s := b.Status()
	want := Status{
		Pin:           4,
		ActiveLevel:   "low",
		PhaseTime:     0,
		Pattern:       SpeedMax.Uint32(),
		PatternLength: DefaultPatternLength,
		Phase:         1,
		On:            true,
	}
	if s != want {
		t.Errorf("Status() = %+v, want %+v", s, want)
	}
}
