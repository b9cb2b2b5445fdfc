package blinker

// Manager keeps track of a set of Blinkers to update or command them together.
// Blinkers are added after construction and must be removed before they are released.
// A host without dynamic memory can skip the Manager and call Update on its own array.
type Manager struct {
	leds []*Blinker
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add appends the Blinker. A Blinker already added is ignored.
func (m *Manager) Add(b *Blinker) {
	if b == nil || m.index(b) >= 0 {
		return
	}
	m.leds = append(m.leds, b)
}

// Remove removes the Blinker and keeps the order of the others.
// Removing an unknown Blinker is a no-op.
func (m *Manager) Remove(b *Blinker) {
	i := m.index(b)
	if i < 0 {
		return
	}

	copy(m.leds[i:], m.leds[i+1:])
	m.leds[len(m.leds)-1] = nil
	m.leds = m.leds[:len(m.leds)-1]
}

// Len returns the number of Blinkers.
func (m *Manager) Len() int {
	return len(m.leds)
}

// Blinkers returns the Blinkers in the order they were added.
func (m *Manager) Blinkers() []*Blinker {
	return append([]*Blinker(nil), m.leds...)
}

// UpdateAll calls Update for each Blinker.
func (m *Manager) UpdateAll() {
	for _, b := range m.leds {
		b.Update()
	}
}

// SetAllOn calls SetOn for each Blinker.
func (m *Manager) SetAllOn() {
	for _, b := range m.leds {
		b.SetOn()
	}
}

// SetAllOff calls SetOff for each Blinker.
func (m *Manager) SetAllOff() {
	for _, b := range m.leds {
		b.SetOff()
	}
}

func (m *Manager) index(b *Blinker) int {
	for i, l := range m.leds {
		if l == b {
			return i
		}
	}
	return -1
}
