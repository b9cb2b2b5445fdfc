package mqtt

import "testing"

func TestHandler_WithoutBroker(t *testing.T) {
	m := New()

	if err := m.Connect(""); err != nil {
		t.Fatalf("Connect() returned error: %v", err)
	}

	called := false
	if err := m.Subscribe("leds/+/set", func(string, []byte) { called = true }); err != nil {
		t.Errorf("Subscribe() returned error: %v", err)
	}
	if _, ok := m.subscriptions["leds/+/set"]; !ok {
		t.Error("subscription is not kept for a later connect")
	}

	go m.Service()
	// without broker the message is dropped
	m.C <- Message{Topic: "leds/status/state", Payload: []byte("{}")}

	if err := m.Disconnect(); err != nil {
		t.Errorf("Disconnect() returned error: %v", err)
	}
	if called {
		t.Error("handler called without broker")
	}
}
