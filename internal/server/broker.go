package server

import (
	"encoding/json"
	"sync"
)

// LiveEvent announces a freshly finished game to feed subscribers.
type LiveEvent struct {
	Type       string  `json:"type"`
	GameID     string  `json:"gameId"`
	PlayerID   *string `json:"playerId,omitempty"`
	TotalScore int     `json:"totalScore"`
	FinishedAt string  `json:"finishedAt"`
}

// Broker is an in-process pub/sub for the live results feed. One shared
// channel set; every subscriber sees every finished game.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded feed events.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the subscriber set.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Publish sends an event to all subscribers.
func (b *Broker) Publish(event LiveEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
