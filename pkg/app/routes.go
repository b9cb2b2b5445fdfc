package app

// initDefaultRoutes initializes the applications default routes.
//  These are the routes which always are the same in every application.
//  Things like led api, version, ...
func (app *App) initDefaultRoutes() {
	api := app.web.Group("/")
	if app.config.Webserver.Webservices["version"] {
		api.Get("/version", app.HandleVersion())
	}
	if app.config.Webserver.Webservices["health"] {
		api.Get("/health", app.HandleHealth())
	}
	if app.config.Webserver.Webservices["leds"] {
		api.Get("/leds", app.HandleLEDs())
		api.Post("/leds/all/on", app.HandleAll("on"))
		api.Post("/leds/all/off", app.HandleAll("off"))
		api.Get("/leds/:name", app.HandleLED())
		api.Put("/leds/:name", app.HandleCommand())
	}
}
