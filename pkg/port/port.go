// Package port holds the definition of a physical output port
package port

// Level is the physical voltage level of a pin.
//
// Note that for active low LEDs a low level results in a lit LED.
type Level bool

const (
	// High indicates a logical 1 on the pin.
	High Level = true
	// Low indicates a logical 0 on the pin.
	Low Level = false
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Output is a single digital output pin of a platform.
type Output interface {
	// Pin returns the pin number that this Output represents.
	Pin() int
	// Output sets the pin as output.
	// A level written before Output is applied when the pin turns into an output.
	Output()
	// Write drives the pin to the given level.
	Write(level Level)
}
