package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func registerTestClient(t *testing.T, hub *Hub, userID int64) *Client {
	t.Helper()
	client := &Client{
		hub:    hub,
		send:   make(chan []byte, 8),
		userID: userID,
		logger: hub.logger,
	}
	hub.register <- client
	// Wait for the hub goroutine to process the registration.
	deadline := time.After(time.Second)
	for hub.ConnectedUsers() == 0 {
		select {
		case <-deadline:
			t.Fatal("client was never registered")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	return client
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := registerTestClient(t, hub, 7)

	hub.SendToUser(7, Event{Type: "notification", Title: "Hi", Body: "There"})

	select {
	case payload := <-client.send:
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if event.Title != "Hi" || event.Type != "notification" {
			t.Errorf("unexpected event: %+v", event)
		}
		if event.Timestamp.IsZero() {
			t.Error("timestamp should be filled in")
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHub_SendToDisconnectedUserIsSilent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Nobody is connected; this must not block or panic.
	hub.SendToUser(42, Event{Type: "notification", Title: "Hi", Body: "There"})
}

func TestHub_FullBufferDropsEvent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := registerTestClient(t, hub, 7)

	// Fill the buffer, then send one more. The extra event is dropped
	// instead of blocking the sender.
	for i := 0; i < cap(client.send)+3; i++ {
		hub.SendToUser(7, Event{Type: "notification", Title: "spam", Body: "x"})
	}

	if got := len(client.send); got != cap(client.send) {
		t.Errorf("buffered events = %d, want full buffer %d", got, cap(client.send))
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := registerTestClient(t, hub, 7)
	hub.unregister <- client

	deadline := time.After(time.Second)
	for hub.ConnectedUsers() != 0 {
		select {
		case <-deadline:
			t.Fatal("client was never unregistered")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}
