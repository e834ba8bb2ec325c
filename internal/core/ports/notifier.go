package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
)

type NotificationKind string

const (
	NotificationOrderCreated          NotificationKind = "order_created"
	NotificationStatusChanged         NotificationKind = "status_changed"
	NotificationDeliveryStatusChanged NotificationKind = "delivery_status_changed"
	NotificationDeliveryRequested     NotificationKind = "delivery_requested"
	NotificationOrderRated            NotificationKind = "order_rated"
)

// Notification is a rendered-later message about one order. Order is a
// snapshot taken after the change was committed.
type Notification struct {
	Kind  NotificationKind
	Order order.State
	From  string
	To    string
	At    time.Time
}

// Notifier delivers notifications on a best-effort basis. It never reports
// failures to the caller; the operation that triggered it has already committed.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
