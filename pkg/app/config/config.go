package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/womat/debug"
	"gopkg.in/yaml.v2"

	"ledblinker/pkg/blinker"
)

var ErrInvalidLED = errors.New("invalid led configuration")

// Config holds the application configuration. Attention!
// Each of the struct fields must be in the format
// first letter uppercase -> followed by CamelCase as in the config file.
// Config defines the struct of global config and the struct of the configuration file
type Config struct {
	Gpio      GpioConfig      `yaml:"gpio"`
	TickInt   int             `yaml:"tick"`
	Tick      time.Duration   `yaml:"-"`
	LEDs      []LEDConfig     `yaml:"leds"`
	Flag      FlagConfig      `yaml:"-"`
	Debug     DebugConfig     `yaml:"debug"`
	Webserver WebserverConfig `yaml:"webserver"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
}

// FlagConfig defines the configured flags (parameters)
type FlagConfig struct {
	Debug      string
	ConfigFile string
}

// GpioConfig defines the gpio driver (gpiomem|gpiod|emulate) and the chip used by gpiod.
type GpioConfig struct {
	Driver string `yaml:"driver"`
	Chip   string `yaml:"chip"`
}

// LEDConfig defines one status LED.
//  pattern is the name of a preset (e.g. speed_slow) or a bit string (e.g. 0b10111).
//  length overwrites the pattern length, 0 keeps the length of the pattern.
//  phasetime is in ms, a missing phasetime is blinker.DefaultPhaseTime.
type LEDConfig struct {
	Name        string  `yaml:"name"`
	Pin         int     `yaml:"pin"`
	ActiveLevel string  `yaml:"activelevel"`
	PhaseTime   *uint32 `yaml:"phasetime"`
	Pattern     string  `yaml:"pattern"`
	Length      uint8   `yaml:"length"`
}

// WebserverConfig defines the struct of the webserver and webservice configuration and configuration file
type WebserverConfig struct {
	URL         string          `yaml:"url"`
	Webservices map[string]bool `yaml:"webservices"`
}

// MQTTConfig defines the struct of the mqtt client configuration and configuration file
type MQTTConfig struct {
	Connection string `yaml:"connection"`
	Topic      string `yaml:"topic"`
}

// DebugConfig defines the struct of the debug configuration and configuration file
type DebugConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

func NewConfig() *Config {
	return &Config{
		Gpio: GpioConfig{
			Driver: "gpiomem",
			Chip:   "gpiochip0",
		},
		TickInt: 10,
		Tick:    10 * time.Millisecond,
		Flag:    FlagConfig{},
		Debug: DebugConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
		Webserver: WebserverConfig{
			URL: "http://0.0.0.0:4000",
			Webservices: map[string]bool{
				"version": true,
				"health":  true,
				"leds":    true,
			},
		},
		MQTT: MQTTConfig{
			Connection: "",
			Topic:      "ledblinker"},
	}
}

func (c *Config) LoadConfig() error {
	if err := c.readConfigFile(); err != nil {
		return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
	}

	if c.Flag.Debug != "" {
		c.Debug.FlagString = c.Flag.Debug
	}
	if err := c.setDebugConfig(); err != nil {
		return fmt.Errorf("unable to open debug file %q: %w", c.Debug.FileString, err)
	}

	if c.TickInt <= 0 {
		return fmt.Errorf("invalid tick %v ms", c.TickInt)
	}
	c.Tick = time.Duration(c.TickInt) * time.Millisecond

	return c.validateLEDs()
}

func (c *Config) readConfigFile() error {
	file, err := os.Open(c.Flag.ConfigFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(c); err != nil {
		return err
	}

	return nil
}

func (c *Config) setDebugConfig() (err error) {
	// defines Debug section of global.Config
	switch c.Debug.FlagString {
	case "trace", "full":
		c.Debug.Flag = debug.Full
	case "debug":
		c.Debug.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard":
		c.Debug.Flag = debug.Standard
	default:
		return fmt.Errorf("unknown debug level %q", c.Debug.FlagString)
	}

	switch c.Debug.FileString {
	case "stderr":
		c.Debug.File = os.Stderr
	case "stdout":
		c.Debug.File = os.Stdout
	default:
		if c.Debug.File, err = os.OpenFile(c.Debug.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}

	return
}

// validateLEDs checks names, pins, active levels and patterns of all LEDs.
func (c *Config) validateLEDs() error {
	names := map[string]bool{}
	pins := map[int]bool{}

	for i, l := range c.LEDs {
		switch {
		case l.Name == "" || strings.ContainsAny(l.Name, "/+#"):
			return fmt.Errorf("%w: led %d: invalid name %q", ErrInvalidLED, i, l.Name)
		case l.Name == "all":
			return fmt.Errorf("%w: led %d: name %q is reserved", ErrInvalidLED, i, l.Name)
		case names[l.Name]:
			return fmt.Errorf("%w: led %q: name already used", ErrInvalidLED, l.Name)
		case pins[l.Pin]:
			return fmt.Errorf("%w: led %q: pin %d already used", ErrInvalidLED, l.Name, l.Pin)
		case l.Length > blinker.MaxPatternLength:
			return fmt.Errorf("%w: led %q: length %d exceeds %d", ErrInvalidLED, l.Name, l.Length, blinker.MaxPatternLength)
		}
		names[l.Name] = true
		pins[l.Pin] = true

		if _, err := l.Level(); err != nil {
			return fmt.Errorf("%w: led %q: %v", ErrInvalidLED, l.Name, err)
		}
		if _, _, err := l.Bits(); err != nil {
			return fmt.Errorf("%w: led %q: %v", ErrInvalidLED, l.Name, err)
		}
	}

	return nil
}

// Level returns the active level, "high" is the default.
func (l LEDConfig) Level() (blinker.ActiveLevel, error) {
	switch strings.ToLower(l.ActiveLevel) {
	case "", "high":
		return blinker.ActiveHigh, nil
	case "low":
		return blinker.ActiveLow, nil
	default:
		return blinker.ActiveHigh, fmt.Errorf("unknown active level %q", l.ActiveLevel)
	}
}

// Phase returns the phase time in ms.
func (l LEDConfig) Phase() uint32 {
	if l.PhaseTime == nil {
		return blinker.DefaultPhaseTime
	}
	return *l.PhaseTime
}

// Bits returns pattern and length, an empty pattern is off.
func (l LEDConfig) Bits() (uint32, uint8, error) {
	if l.Pattern == "" {
		return blinker.Off.Uint32(), blinker.DefaultPatternLength, nil
	}

	pattern, length, err := blinker.Parse(l.Pattern)
	if err != nil {
		return 0, 0, err
	}
	if l.Length != 0 {
		length = l.Length
	}
	return pattern, length, nil
}
