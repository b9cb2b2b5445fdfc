package raspberry

import (
	"fmt"

	"github.com/womat/debug"

	"ledblinker/pkg/port"
)

// EmuGPIO emulates output pins, e.g. to run on a development machine.
type EmuGPIO struct {
	pins map[int]*EmuPin
}

// EmuPin stores the level written to it.
type EmuPin struct {
	gpioPin int
	output  bool
	level   port.Level
	writes  int
	owner   *EmuGPIO
}

// OpenEmu creates an emulated gpio.
func OpenEmu() *EmuGPIO {
	return &EmuGPIO{pins: map[int]*EmuPin{}}
}

// Close releases the emulated gpio.
func (c *EmuGPIO) Close() error {
	return nil
}

// NewPin creates a new pin object.
func (c *EmuGPIO) NewPin(p int) (Pin, error) {
	if _, ok := c.pins[p]; ok {
		return nil, fmt.Errorf("%w: %v", ErrPinInUse, p)
	}

	l := EmuPin{gpioPin: p, owner: c}
	c.pins[p] = &l
	return c.pins[p], nil
}

// Lookup returns the reserved pin with the given number.
func (c *EmuGPIO) Lookup(p int) (*EmuPin, bool) {
	pin, ok := c.pins[p]
	return pin, ok
}

// Pin returns the pin number that this Pin represents.
func (p *EmuPin) Pin() int {
	return p.gpioPin
}

// Output sets pin as Output.
func (p *EmuPin) Output() {
	p.output = true
}

// Write stores the level.
func (p *EmuPin) Write(level port.Level) {
	p.level = level
	p.writes++
	debug.TraceLog.Printf("emulated pin %v: %v", p.gpioPin, level)
}

// Err is always nil.
func (p *EmuPin) Err() error {
	return nil
}

// Close releases the pin.
func (p *EmuPin) Close() error {
	delete(p.owner.pins, p.gpioPin)
	return nil
}

// IsOutput reports whether the pin is set as output.
func (p *EmuPin) IsOutput() bool {
	return p.output
}

// Level returns the last written level.
func (p *EmuPin) Level() port.Level {
	return p.level
}

// Writes returns the number of writes.
func (p *EmuPin) Writes() int {
	return p.writes
}
