package server

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker()
	a := b.Subscribe()
	c := b.Subscribe()

	b.Publish(LiveEvent{Type: "game_finished", GameID: "g1", TotalScore: 12345})

	for name, ch := range map[string]chan []byte{"a": a, "c": c} {
		select {
		case data := <-ch:
			var event LiveEvent
			if err := json.Unmarshal(data, &event); err != nil {
				t.Fatalf("subscriber %s got invalid JSON: %v", name, err)
			}
			if event.GameID != "g1" || event.TotalScore != 12345 {
				t.Errorf("subscriber %s got %+v", name, event)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s got nothing", name)
		}
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	b.Publish(LiveEvent{Type: "game_finished", GameID: "g1"})

	select {
	case data := <-ch:
		t.Fatalf("unsubscribed channel received %s", data)
	default:
	}
}

func TestBrokerDropsWhenSubscriberIsSlow(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()

	// Nobody drains ch; publishing past its buffer must not block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			b.Publish(LiveEvent{Type: "game_finished", GameID: "g"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	if len(ch) == 0 {
		t.Error("buffered events were lost entirely")
	}
}
