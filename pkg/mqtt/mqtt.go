// Package mqtt sends messages to and receives commands from an mqtt broker
package mqtt

import (
	"sync"

	mqttlib "github.com/eclipse/paho.mqtt.golang"
	"github.com/womat/debug"
)

// quiesce is the specified number of milliseconds to wait for existing work to be completed.
const (
	quiesce = 250
)

// Handler contains the handler of the mqtt broker.
type Handler struct {
	handler mqttlib.Client
	// C is the channel to service the mqtt message
	// sending a message to channel C will send the message.
	C chan Message

	// subscriptions are restored after a reconnect
	subscriptions map[string]func(topic string, payload []byte)
	sl            sync.Mutex
}

// Message contains the properties of the mqtt message.
type Message struct {
	Topic    string
	Payload  []byte
	Qos      byte
	Retained bool
}

// New generate a new mqtt broker client.
func New() *Handler {
	return &Handler{
		C:             make(chan Message),
		subscriptions: map[string]func(string, []byte){},
	}
}

// Connect connects to the mqtt broker.
// If no broker is defined, no mqtt message are send.
func (m *Handler) Connect(broker string) error {
	if broker == "" {
		return nil
	}

	opts := mqttlib.NewClientOptions().AddBroker(broker).SetOnConnectHandler(m.resubscribe)
	m.handler = mqttlib.NewClient(opts)
	return m.ReConnect()
}

// ReConnect reconnects to the defined mqtt broker.
func (m *Handler) ReConnect() error {
	t := m.handler.Connect()
	<-t.Done()
	return t.Error()
}

// Disconnect will end the connection to the broker.
func (m *Handler) Disconnect() error {
	if m.handler == nil {
		return nil
	}

	m.handler.Disconnect(quiesce)
	return nil
}

// Subscribe calls handler for each message received on topic.
// The topic may contain wildcards. Without broker Subscribe does nothing.
func (m *Handler) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	m.sl.Lock()
	m.subscriptions[topic] = handler
	m.sl.Unlock()

	if m.handler == nil || !m.handler.IsConnected() {
		return nil
	}
	return m.subscribe(m.handler, topic, handler)
}

func (m *Handler) subscribe(c mqttlib.Client, topic string, handler func(string, []byte)) error {
	t := c.Subscribe(topic, 0, func(_ mqttlib.Client, msg mqttlib.Message) {
		debug.DebugLog.Printf("received %v bytes on topic %v", len(msg.Payload()), msg.Topic())
		handler(msg.Topic(), msg.Payload())
	})
	<-t.Done()
	return t.Error()
}

// resubscribe restores the subscriptions after a (re)connect.
func (m *Handler) resubscribe(c mqttlib.Client) {
	m.sl.Lock()
	defer m.sl.Unlock()

	for topic, handler := range m.subscriptions {
		if err := m.subscribe(c, topic, handler); err != nil {
			debug.ErrorLog.Printf("can't subscribe topic %v: %v", topic, err)
		}
	}
}

// Service listen to a message on the channel C and send the message to mqtt.
// If no handler or topic is defined, the message will be ignored.
func (m *Handler) Service() {
	for d := range m.C {
		if m.handler == nil || d.Topic == "" {
			continue
		}

		go func(msg Message) {
			if !m.handler.IsConnected() {
				debug.DebugLog.Printf("mqtt broker isn't connected, reconnect it")

				if err := m.ReConnect(); err != nil {
					debug.ErrorLog.Printf("can't reconnect to mqtt broker %v", err)
					return
				}
			}

			debug.DebugLog.Printf("publishing %v bytes to topic %v", len(msg.Payload), msg.Topic)
			t := m.handler.Publish(msg.Topic, msg.Qos, msg.Retained, msg.Payload)

			// the asynchronous nature of this library makes it easy to forget to check for errors.
			go func() {
				<-t.Done()
				if err := t.Error(); err != nil {
					debug.ErrorLog.Printf("publishing topic %v: %v", msg.Topic, err)
				}
			}()
		}(d)
	}
}
