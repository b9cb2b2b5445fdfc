package app

import (
	"net/url"
	"sync"

	"ledblinker/pkg/app/config"
	"ledblinker/pkg/blinker"
	"ledblinker/pkg/mqtt"
	"ledblinker/pkg/raspberry"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"
)

// App is the main application struct.
// App is where the application is wired up.
type App struct {
	// web is the fiber web framework instance
	web *fiber.App

	// config is the application configuration
	config *config.Config

	// urlParsed contains the parsed Config.Url parameter
	// and makes it easier to get params out of e.g.
	// url: https://0.0.0.0:7844/?minTls=1.2&bodyLimit=50MB
	urlParsed *url.URL

	// mqtt is the handler to the mqtt broker
	mqtt *mqtt.Handler

	// gpio hands out the output pins of the LEDs
	gpio raspberry.GPIO

	// clock is the millisecond counter shared by all blinkers
	clock blinker.Clock

	// mu serializes the tick loop, web requests and mqtt commands,
	// blinker and manager don't lock themselves.
	mu sync.Mutex
	// manager updates all LEDs at each tick
	manager *blinker.Manager
	// leds in configuration order, byName is the lookup for commands
	leds   []*led
	byName map[string]*led

	// shutdown signals application shutdown
	shutdown  chan struct{}
	closeOnce sync.Once
}

// New checks the Web server URL and initialize the main app structure
func New(config *config.Config) (*App, error) {
	app := &App{
		config: config,

		web:     fiber.New(fiber.Config{DisableStartupMessage: true}),
		mqtt:    mqtt.New(),
		clock:   blinker.SystemClock(),
		manager: blinker.NewManager(),
		byName:  map[string]*led{},

		shutdown: make(chan struct{}),
	}

	u, err := url.Parse(config.Webserver.URL)
	if err != nil {
		debug.ErrorLog.Printf("Error parsing url %q: %s", config.Webserver.URL, err.Error())
		return app, err
	}

	app.urlParsed = u
	return app, nil
}

// Run starts the application.
func (app *App) Run() error {
	if err := app.init(); err != nil {
		return err
	}

	go app.mqtt.Service()
	go app.runWebServer()
	go app.service()

	return nil
}

// init initializes the application.
func (app *App) init() (err error) {
	if app.gpio, err = raspberry.Open(app.config.Gpio.Driver, app.config.Gpio.Chip); err != nil {
		debug.ErrorLog.Printf("can't open gpio %q: %v", app.config.Gpio.Driver, err)
		return err
	}

	for _, c := range app.config.LEDs {
		if err = app.addLED(c); err != nil {
			debug.ErrorLog.Printf("can't initialize led %q: %v", c.Name, err)
			return err
		}
	}

	if err = app.mqtt.Connect(app.config.MQTT.Connection); err != nil {
		debug.ErrorLog.Printf("can't open mqtt broker %v", err)
		return err
	}

	if err = app.mqtt.Subscribe(app.commandTopic(), app.handleCommand); err != nil {
		debug.ErrorLog.Printf("can't subscribe %v: %v", app.commandTopic(), err)
		return err
	}

	app.publishAll()

	// initDefaultRoutes should be always called last because it may access things like app.leds
	// which must be initialized before
	app.initDefaultRoutes()

	return nil
}

// Shutdown returns the read only shutdown channel.
// Shutdown is used to be able to react on application shutdown. (see cmd/main.go)
func (app *App) Shutdown() <-chan struct{} {
	return app.shutdown
}

// Close switches off all LEDs and releases pins, gpio, web server and mqtt broker.
func (app *App) Close() error {
	app.closeOnce.Do(func() { close(app.shutdown) })

	app.releaseLEDs()

	if app.web != nil {
		_ = app.web.Shutdown()
	}

	if app.mqtt != nil {
		_ = app.mqtt.Disconnect()
	}

	if app.gpio != nil {
		return app.gpio.Close()
	}
	return nil
}
