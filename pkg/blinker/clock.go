package blinker

import "time"

// Clock is a monotonic millisecond counter.
// The counter wraps around at math.MaxUint32.
type Clock interface {
	Millis() uint32
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() uint32

func (f ClockFunc) Millis() uint32 {
	return f()
}

// SystemClock returns a Clock based on the monotonic clock of the runtime.
// It counts the milliseconds since its creation and wraps after ~49.7 days.
func SystemClock() Clock {
	start := time.Now()
	return ClockFunc(func() uint32 {
		return uint32(time.Since(start) / time.Millisecond)
	})
}
