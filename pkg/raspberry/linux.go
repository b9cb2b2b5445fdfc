//go:build !windows
// +build !windows

package raspberry

import (
	"fmt"

	"github.com/warthog618/gpio"
	"github.com/warthog618/gpiod"
	"github.com/womat/debug"

	"ledblinker/pkg/port"
)

// consumer is the label of requested lines shown by gpioinfo.
const consumer = "ledblinker"

// RpiGPIO is the gpio memory range from /dev/gpiomem.
type RpiGPIO struct {
	pins map[int]*RpiPin
}

// RpiPin is a pin of the gpio memory range.
type RpiPin struct {
	gpioPin *gpio.Pin
	owner   *RpiGPIO
}

// OpenMem maps the gpio memory range from /dev/gpiomem.
func OpenMem() (*RpiGPIO, error) {
	if err := gpio.Open(); err != nil {
		return nil, err
	}
	return &RpiGPIO{pins: map[int]*RpiPin{}}, nil
}

// Close unmaps gpio memory.
func (c *RpiGPIO) Close() error {
	return gpio.Close()
}

// NewPin creates a new pin object.
// The pin number provided is the BCM GPIO number.
func (c *RpiGPIO) NewPin(p int) (Pin, error) {
	if _, ok := c.pins[p]; ok {
		return nil, fmt.Errorf("%w: %v", ErrPinInUse, p)
	}

	l := RpiPin{gpioPin: gpio.NewPin(p), owner: c}
	c.pins[p] = &l
	return c.pins[p], nil
}

// Pin returns the pin number that this Pin represents.
func (p *RpiPin) Pin() int {
	return p.gpioPin.Pin()
}

// Output sets pin as Output.
func (p *RpiPin) Output() {
	p.gpioPin.Output()
}

// Write sets the pin level. Writing an input pin sets the level
// which is driven as soon as the pin is set as output.
func (p *RpiPin) Write(level port.Level) {
	p.gpioPin.Write(gpio.Level(level))
}

// Err is always nil, memory mapped access can't fail.
func (p *RpiPin) Err() error {
	return nil
}

// Close sets the pin back to input and releases it.
func (p *RpiPin) Close() error {
	p.gpioPin.Input()
	delete(p.owner.pins, p.Pin())
	return nil
}

// Chip represents a single GPIO chip that controls a set of lines.
type Chip struct {
	gpiodChip *gpiod.Chip
	lines     map[int]*Line
}

// Line represents a single requested output line.
// The line is requested when Output is called,
// with the level written before as initial value.
type Line struct {
	gpiodLine *gpiod.Line
	offset    int
	value     int
	err       error
	chip      *Chip
}

// OpenChip opens a GPIO character device, e.g. "gpiochip0".
func OpenChip(name string) (*Chip, error) {
	if name == "" {
		name = "gpiochip0"
	}

	c, err := gpiod.NewChip(name, gpiod.WithConsumer(consumer))
	if err != nil {
		return nil, err
	}
	return &Chip{gpiodChip: c, lines: map[int]*Line{}}, nil
}

// NewPin reserves the line with the given offset.
func (c *Chip) NewPin(offset int) (Pin, error) {
	if _, ok := c.lines[offset]; ok {
		return nil, fmt.Errorf("%w: %v", ErrPinInUse, offset)
	}

	l := &Line{offset: offset, chip: c}
	c.lines[offset] = l
	return l, nil
}

// Close releases the Chip.
//
// It does not release any lines which may be requested - they must be closed
// independently.
func (c *Chip) Close() error {
	return c.gpiodChip.Close()
}

// Pin returns the line offset.
func (l *Line) Pin() int {
	return l.offset
}

// Output requests the line as output.
func (l *Line) Output() {
	if l.gpiodLine != nil {
		return
	}

	l.gpiodLine, l.err = l.chip.gpiodChip.RequestLine(l.offset, gpiod.AsOutput(l.value))
	if l.err != nil {
		debug.ErrorLog.Printf("can't request line %v: %v", l.offset, l.err)
	}
}

// Write sets the line value.
func (l *Line) Write(level port.Level) {
	l.value = 0
	if level {
		l.value = 1
	}

	if l.gpiodLine == nil {
		return
	}

	if l.err = l.gpiodLine.SetValue(l.value); l.err != nil {
		debug.ErrorLog.Printf("can't set line %v: %v", l.offset, l.err)
	}
}

// Err returns the error of the last request or write.
func (l *Line) Err() error {
	return l.err
}

// Close releases all resources held by the requested line.
func (l *Line) Close() error {
	delete(l.chip.lines, l.offset)

	if l.gpiodLine == nil {
		return nil
	}
	err := l.gpiodLine.Close()
	l.gpiodLine = nil
	return err
}
