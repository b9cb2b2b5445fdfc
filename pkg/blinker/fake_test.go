package blinker

import "ledblinker/pkg/port"

// fakePin records the calls of a Blinker.
type fakePin struct {
	pin    int
	output bool
	level  port.Level
	writes []port.Level
	// log is shared between pins to check the order of writes
	log *[]int
	// writtenBeforeOutput is set if Write was called before Output
	writtenBeforeOutput bool
}

func (p *fakePin) Pin() int { return p.pin }

func (p *fakePin) Output() { p.output = true }

func (p *fakePin) Write(l port.Level) {
	if !p.output {
		p.writtenBeforeOutput = true
	}
	p.level = l
	p.writes = append(p.writes, l)
	if p.log != nil {
		*p.log = append(*p.log, p.pin)
	}
}

// fakeClock is a manually advanced millisecond counter.
type fakeClock struct {
	now uint32
}

func (c *fakeClock) Millis() uint32 { return c.now }
