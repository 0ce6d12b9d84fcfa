package events

import (
	"encoding/json"
	"testing"
)

func TestHubPublishReachesSubscribers(t *testing.T) {
	t.Parallel()

	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Publish("hello")
	for _, ch := range []chan string{a, b} {
		select {
		case msg := <-ch:
			if msg != "hello" {
				t.Errorf("got %q", msg)
			}
		default:
			t.Error("subscriber did not receive message")
		}
	}
}

func TestHubDropsWhenSlow(t *testing.T) {
	t.Parallel()

	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// Fill the buffer past capacity; Publish must never block.
	for i := 0; i < 100; i++ {
		h.Publish("msg")
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered %d, want full buffer %d", len(ch), cap(ch))
	}
}

func TestMakeEventEnvelope(t *testing.T) {
	t.Parallel()

	raw := MakeEvent("req-1", TypeSearchDone, 1, map[string]any{"count": 3})

	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatal(err)
	}
	if e.Type != TypeSearchDone || e.Version != 1 || e.RequestID != "req-1" {
		t.Errorf("envelope = %+v", e)
	}
	if e.At.IsZero() {
		t.Error("timestamp not set")
	}
	var data map[string]int
	if err := json.Unmarshal(e.Data, &data); err != nil || data["count"] != 3 {
		t.Errorf("data = %s", e.Data)
	}
}

func TestMakeEventNilData(t *testing.T) {
	t.Parallel()

	var e Event
	if err := json.Unmarshal([]byte(MakeEvent("", "ping", 1, nil)), &e); err != nil {
		t.Fatal(err)
	}
	if len(e.Data) != 0 {
		t.Errorf("data = %s, want omitted", e.Data)
	}
}
