package app

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"
)

// runWebServer starts the applications web server and listens for web requests.
//  It's designed to run in a separate go function to not block the main go function.
//  e.g.: go runWebServer()
//  See app.Run()
func (app *App) runWebServer() {
	err := app.web.Listen(app.urlParsed.Host)
	debug.ErrorLog.Print(err)
}

// HandleLEDs returns the state of all LEDs.
func (app *App) HandleLEDs() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request leds")

		return ctx.JSON(app.StatusAll())
	}
}

// HandleLED returns the state of the LED given by parameter name.
func (app *App) HandleLED() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		name := ctx.Params("name")
		debug.InfoLog.Printf("web request led %q", name)

		s, err := app.Status(name)
		if err != nil {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return ctx.JSON(s)
	}
}

// HandleCommand applies the json encoded Command of the body to the LED given by parameter name.
// The name "all" commands each LED.
func (app *App) HandleCommand() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		name := ctx.Params("name")
		debug.InfoLog.Printf("web request command led %q", name)

		var cmd Command
		if err := ctx.BodyParser(&cmd); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		if err := app.Apply(name, cmd); err != nil {
			return commandError(err)
		}

		if name == all {
			return ctx.JSON(app.StatusAll())
		}

		s, err := app.Status(name)
		if err != nil {
			return commandError(err)
		}
		return ctx.JSON(s)
	}
}

// HandleAll switches all LEDs on or off.
func (app *App) HandleAll(pattern string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Printf("web request all leds %v", pattern)

		if err := app.Apply(all, Command{Pattern: pattern}); err != nil {
			return commandError(err)
		}
		return ctx.JSON(app.StatusAll())
	}
}

func commandError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownLED):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCommand):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
