package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/womat/debug"
)

// commandTopic is the mqtt topic of LED commands: <topic>/<led name>/set
func (app *App) commandTopic() string {
	return app.config.MQTT.Topic + "/+/set"
}

// handleCommand executes a command received by mqtt.
// The payload is either a pattern (e.g. "speed_max", "0b1101") or a json encoded Command.
func (app *App) handleCommand(topic string, payload []byte) {
	name := ledName(app.config.MQTT.Topic, topic)

	cmd, err := parseCommand(payload)
	if err != nil {
		debug.ErrorLog.Printf("invalid command for led %q: %v", name, err)
		return
	}

	if err = app.Apply(name, cmd); err != nil {
		debug.ErrorLog.Printf("command for led %q: %v", name, err)
	}
}

func parseCommand(payload []byte) (Command, error) {
	var cmd Command

	p := bytes.TrimSpace(payload)
	switch {
	case len(p) == 0:
		return cmd, fmt.Errorf("%w: empty payload", ErrInvalidCommand)
	case p[0] == '{':
		if err := json.Unmarshal(p, &cmd); err != nil {
			return cmd, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
		}
	default:
		cmd.Pattern = string(p)
	}

	return cmd, nil
}

// ledName extracts the LED name of a command topic.
func ledName(prefix, topic string) string {
	return strings.TrimSuffix(strings.TrimPrefix(topic, prefix+"/"), "/set")
}
