package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"ledblinker/pkg/app"
	"ledblinker/pkg/app/config"
	"ledblinker/pkg/blinker"

	"github.com/urfave/cli/v2"
	"github.com/womat/debug"
)

const defaultConfigFile = "/opt/womat/config/" + app.MODULE + ".yaml"

func main() {
	exitCode := 1
	defer func() {
		os.Exit(exitCode)
	}()

	// cfg holds the application configuration
	cfg := config.NewConfig()

	cliApp := &cli.App{
		Name:    app.MODULE,
		Usage:   "Non-blocking pattern based status LED blinker for raspberry pi gpio",
		Version: app.VERSION,
		Description: "Drive status LEDs by 32 bit blinking patterns, one bit per phase." +
			"\n The LEDs are configured in the configuration file and can be commanded" +
			"\n by the web api (/leds) or by mqtt (<topic>/<led>/set).",
		UsageText: "ledblinker [--config <file>] [--debug standard|debug|trace]" +
			"\n\nEXAMPLE:" +
			"\n\tstart the blinker and use the configuration file ledblinker.yaml" +
			"\n\t\tledblinker --config /opt/womat/ledblinker.yaml",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Destination: &cfg.Flag.ConfigFile, Value: defaultConfigFile, Usage: "load configuration from `FILE`"},
			&cli.StringFlag{Name: "debug", Aliases: []string{"d"}, Destination: &cfg.Flag.Debug, Usage: "`LEVEL` defines the debug level (standard|debug|trace)"},
		},
		Commands: []*cli.Command{
			{
				Name:   "patterns",
				Usage:  "list the predefined blinking patterns",
				Action: listPatterns,
			},
		},
		Action: func(ctx *cli.Context) error {
			if err := cfg.LoadConfig(); err != nil {
				return err
			}

			debug.SetDebug(cfg.Debug.File, cfg.Debug.Flag)
			defer func() {
				debug.InfoLog.Printf("closing debug file %s", cfg.Debug.FileString)
				_ = cfg.Debug.File.Close()
			}()

			a, err := app.New(cfg)
			defer func() {
				debug.InfoLog.Printf("closing app %s", app.Version())
				_ = a.Close()
			}()

			if err != nil {
				return err
			}

			debug.InfoLog.Printf("starting app %s", app.Version())
			if err = a.Run(); err != nil {
				return err
			}

			// capture exit signals to ensure resources are released on exit.
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			// wait for am os.Interrupt signal (CTRL C)
			sig := <-quit
			debug.InfoLog.Printf("Got %s signal. Aborting...", sig)

			return nil
		},
	}

	// we expect to have more command line flags in the future - sort them
	sort.Sort(cli.FlagsByName(cliApp.Flags))
	sort.Sort(cli.CommandsByName(cliApp.Commands))

	err := cliApp.Run(os.Args)
	if err != nil {
		debug.FatalLog.Print(err)
		exitCode = 1
		return
	}

	exitCode = 0
}

// listPatterns prints name, bits and length of the predefined patterns.
func listPatterns(ctx *cli.Context) error {
	w := ctx.App.Writer
	for _, p := range blinker.Patterns {
		if _, err := fmt.Fprintf(w, "%-18s %032b %d\n", p, p.Uint32(), blinker.DefaultPatternLength); err != nil {
			return err
		}
	}
	return nil
}
