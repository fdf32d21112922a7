package bot

import (
	"sync"
)

// Hub fans executed-trade events out to subscribers (the websocket stream
// handler, the AMQP publisher). Slow subscribers drop events instead of
// blocking the engine.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan TradeEvent
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan TradeEvent)}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function.
func (h *Hub) Subscribe() (<-chan TradeEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan TradeEvent, 16)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking.
func (h *Hub) Publish(event TradeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		select {
		case sub <- event:
		default:
		}
	}
}
