package notify_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/require"
)

var notifiedAt = time.Date(2026, 3, 8, 9, 30, 0, 0, time.UTC)

func orderState(t *testing.T) order.State {
	t.Helper()
	rose, err := order.NewItem(1, "Red <roses>", "bouquets", "", 5000, 2)
	require.NoError(t, err)
	tulip, err := order.NewItem(2, "Tulips", "bouquets", "", 2500, 1)
	require.NoError(t, err)
	totals, err := order.NewTotals(12500, 0, 0)
	require.NoError(t, err)

	return order.State{
		ID:             42,
		Customer:       order.Customer{Name: "Aigerim", Email: "aigerim@example.com", Phone: "+77010000000", Address: "Abay 1"},
		Items:          []order.Item{rose, tulip},
		Totals:         totals,
		Status:         order.StatusCreated,
		DeliveryStatus: order.DeliveryNone,
		Payment:        order.Payment{Method: order.PaymentDemo, Status: order.PaymentPending},
		CreatedAt:      notifiedAt,
		UpdatedAt:      notifiedAt,
	}
}

func created(t *testing.T) ports.Notification {
	return ports.Notification{Kind: ports.NotificationOrderCreated, Order: orderState(t), At: notifiedAt}
}

type fakeLinks struct{}

func (fakeLinks) URL(action link.Action, orderID int64) (string, error) {
	return fmt.Sprintf("https://shop.example/api/orders/%s/tok-%d/", action.PathSegment(), orderID), nil
}

type recordingChannel struct {
	name string
	err  error

	mu   sync.Mutex
	sent []ports.Notification
	// gate, when set, holds the first Send until it is closed.
	gate    chan struct{}
	entered chan struct{}
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Send(ctx context.Context, n ports.Notification) error {
	c.mu.Lock()
	first := len(c.sent) == 0
	c.sent = append(c.sent, n)
	c.mu.Unlock()

	if first && c.gate != nil {
		close(c.entered)
		<-c.gate
	}
	return c.err
}

func (c *recordingChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

type memoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]bool
	err     error
	delay   time.Duration
	claimed int
}

func (d *memoryDeduper) Claim(_ context.Context, key string) (bool, error) {
	time.Sleep(d.delay)
	if d.err != nil {
		return false, d.err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.claimed++
	if d.seen == nil {
		d.seen = map[string]bool{}
	}
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}


func (d *memoryDeduper) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.claimed
}
