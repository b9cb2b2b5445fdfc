// Package blinker flashes status LEDs by a bit pattern without blocking the caller.
//
// One Blinker handles one LED attached to an output pin. The pin and the active
// level are fixed at construction time, the pattern and the phase time can be
// changed at any time. Update must be called periodically, either from a loop
// (the phase time gates the phase advance) or from a timed routine with a phase
// time of zero (every call advances the phase).
//
// Blinker and Manager do not lock. Calls for the same Blinker must not overlap.
package blinker

import "ledblinker/pkg/port"

const (
	// DefaultPatternLength is the number of used bits of a pattern by default.
	DefaultPatternLength = 20
	// MaxPatternLength is the number of bits of the pattern field.
	MaxPatternLength = 32
	// DefaultPhaseTime is the phase time in milliseconds.
	// A pattern takes DefaultPatternLength x 100ms = 2 seconds by default.
	DefaultPhaseTime = 100
)

// ActiveLevel defines which pin level lights the LED.
type ActiveLevel uint8

const (
	// ActiveHigh is an LED with grounded cathode and switched anode.
	ActiveHigh ActiveLevel = iota
	// ActiveLow is an LED with the anode on Vcc and switched cathode.
	ActiveLow
)

func (a ActiveLevel) String() string {
	if a == ActiveLow {
		return "low"
	}
	return "high"
}

// level translates the logical LED state into the pin level.
func (a ActiveLevel) level(on bool) port.Level {
	if a == ActiveLow {
		on = !on
	}
	return port.Level(on)
}

// Blinker drives one LED.
type Blinker struct {
	pin         port.Output
	activeLevel ActiveLevel
	clock       Clock

	// phaseTime in milliseconds, 0 means every Update advances the phase
	phaseTime     uint32
	pattern       uint32
	patternLength uint8

	// ledState is the last written logical state
	ledState bool
	phase    uint8
	// lastTime is the clock value of the last phase advance
	lastTime uint32
}

// Status is a snapshot of a Blinker.
type Status struct {
	Pin           int    `json:"pin"`
	ActiveLevel   string `json:"activeLevel"`
	PhaseTime     uint32 `json:"phaseTime"`
	Pattern       uint32 `json:"pattern"`
	PatternLength uint8  `json:"patternLength"`
	Phase         uint8  `json:"phase"`
	On            bool   `json:"on"`
}

// New drives the pin to the level of a dark LED, sets it as output and returns the Blinker.
// The pattern is Off. If clock is nil, SystemClock is used.
func New(pin port.Output, activeLevel ActiveLevel, clock Clock) *Blinker {
	if clock == nil {
		clock = SystemClock()
	}

	pin.Write(activeLevel.level(false))
	pin.Output()

	return &Blinker{
		pin:           pin,
		activeLevel:   activeLevel,
		clock:         clock,
		phaseTime:     DefaultPhaseTime,
		pattern:       Off.Uint32(),
		patternLength: DefaultPatternLength,
	}
}

// SetPhaseTime sets the phase time in milliseconds and restarts the timing window.
// Phase time x pattern length is the period of the pattern.
func (b *Blinker) SetPhaseTime(ms uint32) {
	b.phaseTime = ms
	b.lastTime = b.clock.Millis()
}

// SetPattern sets the bit pattern and the number of used bits.
// Bit i is the LED state of phase i. A length outside [1, MaxPatternLength]
// is ignored. The phase restarts only if pattern or length changes.
func (b *Blinker) SetPattern(pattern uint32, length uint8) {
	if length == 0 || length > MaxPatternLength {
		return
	}

	if b.pattern != pattern || b.patternLength != length {
		b.pattern = pattern
		b.patternLength = length
		b.phase = 0
	}
}

// SetPreset sets a predefined pattern.
func (b *Blinker) SetPreset(p Pattern, length uint8) {
	b.SetPattern(p.Uint32(), length)
}

// SetOn sets the On pattern.
func (b *Blinker) SetOn() {
	b.SetPreset(On, DefaultPatternLength)
}

// SetOff sets the Off pattern.
func (b *Blinker) SetOff() {
	b.SetPreset(Off, DefaultPatternLength)
}

// Update writes the LED state of the current phase and advances the phase.
// With a phase time other than zero nothing happens until the phase time has
// elapsed since the last advance. The pin is written only if the state changes.
func (b *Blinker) Update() {
	if b.phaseTime != 0 {
		now := b.clock.Millis()
		// unsigned subtraction survives the wrap around of the clock
		if now-b.lastTime < b.phaseTime {
			return
		}
		b.lastTime = now
	}

	on := b.pattern>>b.phase&1 == 1
	if on != b.ledState {
		b.ledState = on
		b.pin.Write(b.activeLevel.level(on))
	}

	if b.phase++; b.phase >= b.patternLength {
		b.phase = 0
	}
}

// Pin returns the pin number of the LED.
func (b *Blinker) Pin() int {
	return b.pin.Pin()
}

// ActiveLevel returns the active level of the LED.
func (b *Blinker) ActiveLevel() ActiveLevel {
	return b.activeLevel
}

// PhaseTime returns the phase time in milliseconds.
func (b *Blinker) PhaseTime() uint32 {
	return b.phaseTime
}

// Pattern returns the pattern and its length.
func (b *Blinker) Pattern() (uint32, uint8) {
	return b.pattern, b.patternLength
}

// Phase returns the index of the next phase to show.
func (b *Blinker) Phase() uint8 {
	return b.phase
}

// LedState returns the last written logical state, true is lit.
func (b *Blinker) LedState() bool {
	return b.ledState
}

func (b *Blinker) Status() Status {
	return Status{
		Pin:           b.pin.Pin(),
		ActiveLevel:   b.activeLevel.String(),
		PhaseTime:     b.phaseTime,
		Pattern:       b.pattern,
		PatternLength: b.patternLength,
		Phase:         b.phase,
		On:            b.ledState,
	}
}
