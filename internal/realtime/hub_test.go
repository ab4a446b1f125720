package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_DeliversOnlyMatchingTables(t *testing.T) {
	hub := NewHub()
	orders := hub.Subscribe("orders")
	defer orders.Unsubscribe()
	products := hub.Subscribe("products", "product_variants")
	defer products.Unsubscribe()

	hub.Publish(Event{Table: "product_variants", Op: OpUpdate})

	select {
	case ev := <-products.C:
		assert.Equal(t, "product_variants", ev.Table)
		assert.False(t, ev.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected event on products subscription")
	}
	assert.Empty(t, orders.C)
}

func TestHub_OpFilter(t *testing.T) {
	hub := NewHub()
	inserts := hub.SubscribeOp(OpInsert, "orders")
	defer inserts.Unsubscribe()

	hub.Publish(Event{Table: "orders", Op: OpUpdate})
	assert.Empty(t, inserts.C)

	hub.Publish(Event{Table: "orders", Op: OpInsert})
	require.Len(t, inserts.C, 1)
}

func TestHub_AllTables(t *testing.T) {
	hub := NewHub()
	all := hub.Subscribe(AllTables)
	defer all.Unsubscribe()

	hub.Publish(Event{Table: "invoices", Op: OpDelete})
	require.Len(t, all.C, 1)
	assert.Equal(t, 1, hub.Subscribers("anything"))
}

func TestHub_CoalescesPendingEvents(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("orders")
	defer sub.Unsubscribe()

	hub.Publish(Event{Table: "orders", Op: OpInsert})
	hub.Publish(Event{Table: "orders", Op: OpUpdate})
	hub.Publish(Event{Table: "orders", Op: OpDelete})

	require.Len(t, sub.C, 1)
	ev := <-sub.C
	assert.Equal(t, OpDelete, ev.Op, "newest event replaces the pending one")
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("orders")
	assert.Equal(t, 1, hub.Subscribers("orders"))

	sub.Unsubscribe()
	sub.Unsubscribe()

	assert.Equal(t, 0, hub.Subscribers("orders"))
	_, ok := <-sub.C
	assert.False(t, ok, "channel closed after unsubscribe")

	// Publishing after unsubscribe must not panic on the closed channel.
	hub.Publish(Event{Table: "orders", Op: OpInsert})
}

func TestHub_RepeatedCyclesLeaveNoListeners(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 100; i++ {
		sub := hub.Subscribe("orders", "invoices")
		sub.Unsubscribe()
	}
	assert.Equal(t, 0, hub.Subscribers("orders"))
	assert.Equal(t, 0, hub.Subscribers("invoices"))
}

func TestHub_CloseReleasesEveryone(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("orders")
	b := hub.Subscribe("products")

	hub.Close()

	_, okA := <-a.C
	_, okB := <-b.C
	assert.False(t, okA)
	assert.False(t, okB)
	a.Unsubscribe()
	assert.Equal(t, 0, hub.Subscribers("orders"))
}
