// Package live fans completed sales out to dashboard subscribers over
// server-sent events. Delivery is best effort: slow subscribers drop
// events rather than block the publisher.
package live

import (
	"errors"
	"sync"
	"time"

	"github.com/warungkit/warungpos/internal/clock"
)

const (
	DefaultBufferSize       = 50
	DefaultSubscriberBuffer = 16
)

var ErrHubUnavailable = errors.New("hub_unavailable")

type SaleEvent struct {
	OrderNumber string `json:"order_number"`
	TotalAmount int64  `json:"total_amount"`
	CompletedAt string `json:"completed_at"`
}

// Hub keeps a replay buffer of recent sales so a subscriber that just
// connected still sees the tail of activity.
type Hub struct {
	clock            clock.Clock
	bufferSize       int
	subscriberBuffer int

	mu     sync.Mutex
	buffer []SaleEvent
	subs   map[uint64]chan SaleEvent
	nextID uint64
}

type Subscription struct {
	hub  *Hub
	id   uint64
	ch   chan SaleEvent
	once sync.Once
}

func NewHub(c clock.Clock) *Hub {
	return &Hub{
		clock:            c,
		bufferSize:       DefaultBufferSize,
		subscriberBuffer: DefaultSubscriberBuffer,
		subs:             make(map[uint64]chan SaleEvent),
	}
}

// SaleCompleted publishes a settled sale to all subscribers.
func (h *Hub) SaleCompleted(orderNumber string, totalAmount int64) {
	if h == nil {
		return
	}
	h.Publish(SaleEvent{
		OrderNumber: orderNumber,
		TotalAmount: totalAmount,
		CompletedAt: h.clock.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) Publish(event SaleEvent) {
	if h == nil {
		return
	}

	h.mu.Lock()
	h.buffer = append(h.buffer, event)
	if len(h.buffer) > h.bufferSize {
		h.buffer = h.buffer[len(h.buffer)-h.bufferSize:]
	}
	subs := make([]chan SaleEvent, 0, len(h.subs))
	for _, ch := range h.subs {
		subs = append(subs, ch)
	}
	h.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers a listener and returns the replay backlog.
func (h *Hub) Subscribe() (*Subscription, []SaleEvent, error) {
	if h == nil {
		return nil, nil, ErrHubUnavailable
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan SaleEvent, h.subscriberBuffer)
	h.subs[id] = ch
	backlog := append([]SaleEvent(nil), h.buffer...)
	h.mu.Unlock()

	return &Subscription{hub: h, id: id, ch: ch}, backlog, nil
}

func (h *Hub) unsubscribe(id uint64) {
	if h == nil {
		return
	}
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

func (s *Subscription) Events() <-chan SaleEvent {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.id)
	})
}
