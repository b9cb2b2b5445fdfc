// Package raspberry provides the output pins of a raspberry pi for status LEDs
package raspberry

import (
	"errors"
	"fmt"

	"ledblinker/pkg/port"
)

var (
	ErrInvalidParam = errors.New("invalid parameters")
	ErrNotSupported = errors.New("gpio driver not supported on this platform")
	ErrPinInUse     = errors.New("pin already used")
)

// Drivers selectable by configuration.
const (
	// DriverMem uses the gpio memory range of /dev/gpiomem.
	DriverMem = "gpiomem"
	// DriverChip uses the gpio character device, e.g. /dev/gpiochip0.
	DriverChip = "gpiod"
	// DriverEmu keeps the pin levels in memory.
	DriverEmu = "emulate"
)

// GPIO hands out output pins.
type GPIO interface {
	// NewPin reserves the pin with the given number.
	// A pin can be reserved only once.
	NewPin(p int) (Pin, error)
	// Close releases the gpio driver. Pins must be closed before.
	Close() error
}

// Pin is an output pin which can be released.
type Pin interface {
	port.Output
	// Err returns the error of the last hardware access.
	Err() error
	// Close releases the pin.
	Close() error
}

// Open opens the gpio driver with the given name.
// The chip is used by DriverChip only.
func Open(driver, chip string) (GPIO, error) {
	switch driver {
	case DriverMem:
		g, err := OpenMem()
		if err != nil {
			return nil, err
		}
		return g, nil
	case DriverChip:
		g, err := OpenChip(chip)
		if err != nil {
			return nil, err
		}
		return g, nil
	case DriverEmu:
		return OpenEmu(), nil
	default:
		return nil, fmt.Errorf("%w: gpio driver %q", ErrInvalidParam, driver)
	}
}
