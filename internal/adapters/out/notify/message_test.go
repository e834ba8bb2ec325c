package notify_test

import (
	"testing"
	"time"

	"storefront/internal/adapters/out/notify"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
)

func TestStars(t *testing.T) {
	assert.Equal(t, "⭐⭐⭐☆☆", notify.Stars(3))
	assert.Equal(t, "☆☆☆☆☆", notify.Stars(-1))
	assert.Equal(t, "⭐⭐⭐⭐⭐", notify.Stars(9))
}

func TestRender(t *testing.T) {
	t.Run("rating", func(t *testing.T) {
		o := orderState(t)
		o.Rating = &order.Rating{Score: 4}

		text, keyboard := notify.Render(ports.Notification{Kind: ports.NotificationOrderRated, Order: o})

		assert.False(t, keyboard)
		assert.Contains(t, text, "Rating: ⭐⭐⭐⭐☆")
		assert.Contains(t, text, "Comment: no comment")
	})

	t.Run("delivery requested with a slot", func(t *testing.T) {
		o := orderState(t)
		o.Delivery = order.Delivery{Slot: "14:00-16:00"}
		o.DeliveryStatus = order.DeliveryPending

		text, keyboard := notify.Render(ports.Notification{Kind: ports.NotificationDeliveryRequested, Order: o})

		assert.True(t, keyboard)
		assert.Contains(t, text, "Address: Abay 1")
		assert.Contains(t, text, "When: 14:00-16:00")
		assert.Contains(t, text, "Delivery status: <b>pending</b>")
	})

	t.Run("delivery requested with a date", func(t *testing.T) {
		o := orderState(t)
		at := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
		o.Delivery = order.Delivery{Address: "Dostyk 5", DateTime: &at, Comment: "ring twice"}

		text, _ := notify.Render(ports.Notification{Kind: ports.NotificationDeliveryRequested, Order: o})

		assert.Contains(t, text, "Address: Dostyk 5")
		assert.Contains(t, text, "When: 09.03.2026 14:00")
		assert.Contains(t, text, "Comment: ring twice")
	})

	t.Run("quick order with coupon and gift", func(t *testing.T) {
		o := orderState(t)
		o.QuickOrder = true
		totals, _ := order.NewTotals(12500, 1250, 0)
		o.Totals = totals
		o.Coupon = &order.AppliedCoupon{Code: "LOVE10"}
		o.Gift = order.Gift{IsGift: true, RecipientName: "Mom"}

		text, _ := notify.Render(ports.Notification{Kind: ports.NotificationOrderCreated, Order: o})

		assert.Contains(t, text, "<b>Quick order #42</b>")
		assert.Contains(t, text, "Coupon: LOVE10 (−1 250 ₸)")
		assert.Contains(t, text, "🎁 Gift for Mom")
		assert.Contains(t, text, "Total: <b>11 250 ₸</b>")
	})

	t.Run("status change is escaped", func(t *testing.T) {
		text, _ := notify.Render(ports.Notification{Kind: ports.NotificationStatusChanged, Order: orderState(t), From: "<a>", To: "processing"})

		assert.Contains(t, text, "&lt;a&gt; → <b>processing</b>")
		assert.Contains(t, text, "Total: 12 500 ₸")
	})
}
