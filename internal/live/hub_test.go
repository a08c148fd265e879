package live

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warungkit/warungpos/internal/clock"
)

func TestSubscribeReceivesPublishedSales(t *testing.T) {
	hub := NewHub(clock.NewFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))

	sub, backlog, err := hub.Subscribe()
	require.NoError(t, err)
	defer sub.Close()
	assert.Empty(t, backlog)

	hub.SaleCompleted("ORD-20260314090000-AAAA1111", 66000)

	select {
	case event := <-sub.Events():
		assert.Equal(t, "ORD-20260314090000-AAAA1111", event.OrderNumber)
		assert.Equal(t, int64(66000), event.TotalAmount)
		assert.Equal(t, "2026-03-14T09:00:00Z", event.CompletedAt)
	case <-time.After(time.Second):
		t.Fatal("expected a sale event")
	}
}

func TestSubscribeReplaysBacklog(t *testing.T) {
	hub := NewHub(clock.NewFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))

	for i := 0; i < DefaultBufferSize+10; i++ {
		hub.Publish(SaleEvent{OrderNumber: "ORD", TotalAmount: int64(i)})
	}

	sub, backlog, err := hub.Subscribe()
	require.NoError(t, err)
	defer sub.Close()

	require.Len(t, backlog, DefaultBufferSize)
	assert.Equal(t, int64(10), backlog[0].TotalAmount)
	assert.Equal(t, int64(DefaultBufferSize+9), backlog[len(backlog)-1].TotalAmount)
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub(clock.NewFakeClock(time.Now()))

	sub, _, err := hub.Subscribe()
	require.NoError(t, err)
	sub.Close()
	sub.Close()

	// Publishing after close must not panic or block.
	hub.Publish(SaleEvent{OrderNumber: "ORD", TotalAmount: 1})
}
