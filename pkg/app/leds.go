package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ledblinker/pkg/app/config"
	"ledblinker/pkg/blinker"
	"ledblinker/pkg/mqtt"
	"ledblinker/pkg/raspberry"

	"github.com/womat/debug"
)

// all is the led name to command all LEDs together.
const all = "all"

var (
	ErrUnknownLED     = errors.New("unknown led")
	ErrInvalidCommand = errors.New("invalid command")
)

// led is a configured status LED.
type led struct {
	name    string
	pin     raspberry.Pin
	blinker *blinker.Blinker
}

// LEDStatus is the state of a LED reported by web and mqtt.
type LEDStatus struct {
	Name string `json:"name"`
	blinker.Status
}

// Command changes pattern and/or phase time of a LED.
//  Pattern is a preset name (e.g. "on", "speed_slow") or a bit string (e.g. "0b1011").
//  Length overwrites the length of the pattern, 0 keeps it.
//  PhaseTime in ms, nil keeps the phase time.
type Command struct {
	Pattern   string  `json:"pattern"`
	Length    uint8   `json:"length"`
	PhaseTime *uint32 `json:"phaseTime"`
}

// addLED reserves the pin, creates the blinker and adds it to the manager.
func (app *App) addLED(c config.LEDConfig) error {
	if _, ok := app.byName[c.Name]; ok {
		return fmt.Errorf("duplicate led name %q", c.Name)
	}

	level, err := c.Level()
	if err != nil {
		return err
	}

	pattern, length, err := c.Bits()
	if err != nil {
		return err
	}

	pin, err := app.gpio.NewPin(c.Pin)
	if err != nil {
		return err
	}

	b := blinker.New(pin, level, app.clock)
	if err = pin.Err(); err != nil {
		_ = pin.Close()
		return err
	}

	b.SetPhaseTime(c.Phase())
	b.SetPattern(pattern, length)

	l := &led{name: c.Name, pin: pin, blinker: b}
	app.leds = append(app.leds, l)
	app.byName[c.Name] = l
	app.manager.Add(b)

	debug.InfoLog.Printf("led %q on pin %v active %v: pattern %b/%v, phase time %vms",
		c.Name, c.Pin, level, pattern, length, c.Phase())
	return nil
}

// releaseLEDs switches off all LEDs immediately, removes them from the manager and closes their pins.
func (app *App) releaseLEDs() {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.manager.SetAllOff()
	for _, l := range app.leds {
		// write the off level now, without waiting for the next phase
		l.blinker.SetPhaseTime(0)
		l.blinker.Update()

		app.manager.Remove(l.blinker)
		if err := l.pin.Close(); err != nil {
			debug.ErrorLog.Printf("can't close pin of led %q: %v", l.name, err)
		}
	}

	app.leds = nil
	app.byName = map[string]*led{}
}

// service updates all LEDs every tick until shutdown.
func (app *App) service() {
	ticker := time.NewTicker(app.config.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-app.shutdown:
			return
		case <-ticker.C:
			app.tick()
		}
	}
}

func (app *App) tick() {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.manager.UpdateAll()
}

// Apply executes the command for the named LED, the name "all" commands each LED.
func (app *App) Apply(name string, cmd Command) error {
	var pattern uint32
	var length uint8
	var err error

	if cmd.Pattern != "" {
		if pattern, length, err = blinker.Parse(cmd.Pattern); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCommand, err)
		}
		if cmd.Length != 0 {
			length = cmd.Length
		}
		if length > blinker.MaxPatternLength {
			return fmt.Errorf("%w: length %v exceeds %v", ErrInvalidCommand, length, blinker.MaxPatternLength)
		}
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	var leds []*led
	switch l, ok := app.byName[name]; {
	case name == all:
		leds = app.leds
	case ok:
		leds = []*led{l}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLED, name)
	}

	if name == all && cmd.PhaseTime == nil {
		switch {
		case cmd.Pattern != "" && pattern == blinker.On.Uint32() && length == blinker.DefaultPatternLength:
			app.manager.SetAllOn()
			app.publish(leds...)
			return nil
		case cmd.Pattern != "" && pattern == blinker.Off.Uint32() && length == blinker.DefaultPatternLength:
			app.manager.SetAllOff()
			app.publish(leds...)
			return nil
		}
	}

	for _, l := range leds {
		if cmd.PhaseTime != nil {
			l.blinker.SetPhaseTime(*cmd.PhaseTime)
		}
		if cmd.Pattern != "" {
			l.blinker.SetPattern(pattern, length)
		}
		debug.DebugLog.Printf("led %q: %+v", l.name, l.blinker.Status())
	}

	app.publish(leds...)
	return nil
}

// Status returns the state of the named LED.
func (app *App) Status(name string) (LEDStatus, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	l, ok := app.byName[name]
	if !ok {
		return LEDStatus{}, fmt.Errorf("%w: %q", ErrUnknownLED, name)
	}
	return l.status(), nil
}

// StatusAll returns the state of all LEDs in configuration order.
func (app *App) StatusAll() []LEDStatus {
	app.mu.Lock()
	defer app.mu.Unlock()

	s := make([]LEDStatus, 0, len(app.leds))
	for _, l := range app.leds {
		s = append(s, l.status())
	}
	return s
}

func (l *led) status() LEDStatus {
	return LEDStatus{Name: l.name, Status: l.blinker.Status()}
}

// publishAll sends the state of each LED to the mqtt broker.
func (app *App) publishAll() {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.publish(app.leds...)
}

// publish sends the state of the LEDs to the mqtt broker, the caller holds app.mu.
func (app *App) publish(leds ...*led) {
	if app.config.MQTT.Connection == "" {
		return
	}

	for _, l := range leds {
		app.sendMQTT(app.config.MQTT.Topic+"/"+l.name+"/state", l.status())
	}
}

// sendMQTT send message struct to the mqtt broker.
func (app *App) sendMQTT(topic string, message interface{}) {
	go func(t string, r interface{}) {
		debug.TraceLog.Printf("prepare mqtt message %v %v", t, r)

		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			debug.ErrorLog.Printf("sendMQTT marshal: %v", err)
			return
		}

		app.mqtt.C <- mqtt.Message{
			Qos:      0,
			Retained: true,
			Topic:    t,
			Payload:  b,
		}
	}(topic, message)
}
