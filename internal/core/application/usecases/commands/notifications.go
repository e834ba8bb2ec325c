package commands

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

var notificationKinds = map[order.EventKind]ports.NotificationKind{
	order.EventCreated:               ports.NotificationOrderCreated,
	order.EventQuickOrder:            ports.NotificationOrderCreated,
	order.EventRepeatOrder:           ports.NotificationOrderCreated,
	order.EventStatusChanged:         ports.NotificationStatusChanged,
	order.EventDeliveryStatusChanged: ports.NotificationDeliveryStatusChanged,
	order.EventDeliveryRequested:     ports.NotificationDeliveryRequested,
	order.EventRated:                 ports.NotificationOrderRated,
}

// pendingNotices picks the buffered events of the given kinds. It must run
// before the repository persists the order, which clears the buffer.
func pendingNotices(o *order.Order, kinds ...order.EventKind) []order.Event {
	var picked []order.Event
	for _, e := range o.PendingEvents() {
		for _, k := range kinds {
			if e.Kind == k {
				picked = append(picked, e)
				break
			}
		}
	}
	return picked
}

// notify hands one notification per picked event to the notifier. Called
// after commit so the snapshot carries the stored id.
func notify(ctx context.Context, notifier ports.Notifier, o *order.Order, events []order.Event) {
	if notifier == nil || len(events) == 0 {
		return
	}
	state := o.State()
	for _, e := range events {
		kind, ok := notificationKinds[e.Kind]
		if !ok {
			continue
		}
		n := ports.Notification{Kind: kind, Order: state, At: e.CreatedAt}
		if from, ok := e.Payload["from"]; ok {
			n.From = fmt.Sprint(from)
		}
		if to, ok := e.Payload["to"]; ok {
			n.To = fmt.Sprint(to)
		}
		notifier.Notify(ctx, n)
	}
}
