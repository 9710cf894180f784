package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNotifyNeverBlocks(t *testing.T) {
	hub := NewHub()
	// No Run loop and no clients: every Notify must still return.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Notify("certificate.generated", map[string]int{"n": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked without consumers")
	}
}

func TestEventEnvelope(t *testing.T) {
	hub := NewHub()
	hub.Notify("certificate.generated", map[string]int{"certificate_number": 7})

	msg := <-hub.broadcast
	var ev Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("broadcast payload is not JSON: %v", err)
	}
	if ev.Type != "certificate.generated" {
		t.Errorf("unexpected type: %s", ev.Type)
	}
	if ev.At.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestClientCount(t *testing.T) {
	hub := NewHub()
	if n := hub.ClientCount(); n != 0 {
		t.Errorf("fresh hub reports %d clients", n)
	}
}
