package order

import (
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// Source tags where an action came from.
type Source string

const (
	SourceAPI       Source = "api"
	SourceTelegram  Source = "telegram"
	SourceQuickForm Source = "quick_form"
	SourceSystem    Source = "system"
)

type EventKind string

const (
	EventCreated                EventKind = "created"
	EventQuickOrder             EventKind = "quick_order"
	EventRepeatOrder            EventKind = "repeat_order"
	EventStatusChanged          EventKind = "status_changed"
	EventDeliveryStatusChanged  EventKind = "delivery_status_changed"
	EventDeliveryRequested      EventKind = "delivery_requested"
	EventRated                  EventKind = "rated"
	EventCallMe                 EventKind = "call_me"
	EventAddressChangeRequested EventKind = "address_change_requested"
	EventDeliveryPhotoUploaded  EventKind = "delivery_photo_uploaded"
	EventPaymentStatusChanged   EventKind = "payment_status_changed"
)

// Origin describes who triggers a mutation, from where and when.
type Origin struct {
	Actor  kernel.Actor
	Source Source
	At     time.Time
	Notes  string
}

// Event is an action-granular, append-only record.
type Event struct {
	Kind      EventKind
	Payload   map[string]any
	Actor     kernel.Actor
	Source    Source
	CreatedAt time.Time
}

// AuditEntry is a field-granular, append-only record.
type AuditEntry struct {
	Field     string
	OldValue  string
	NewValue  string
	Actor     kernel.Actor
	Notes     string
	CreatedAt time.Time
}

func auditValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case *int:
		if t == nil {
			return ""
		}
		return fmt.Sprint(*t)
	default:
		return fmt.Sprint(v)
	}
}
