//go:build windows
// +build windows

package raspberry

// OpenMem is not supported on windows, use DriverEmu.
func OpenMem() (GPIO, error) {
	return nil, ErrNotSupported
}

// OpenChip is not supported on windows, use DriverEmu.
func OpenChip(string) (GPIO, error) {
	return nil, ErrNotSupported
}
