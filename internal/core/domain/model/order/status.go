package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status is the commerce lifecycle of an order.
//
//	created ──> processing ──> delivering ──> completed
//	   │             │              │
//	   └─────────────┴──────────────┴──────> canceled
//
// completed and canceled are terminal.
type Status string

const (
	StatusCreated    Status = "created"
	StatusProcessing Status = "processing"
	StatusDelivering Status = "delivering"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// Allowed targets are listed in preference order; Path explores them in that order.
var statusTransitions = map[Status][]Status{
	StatusCreated:    {StatusProcessing, StatusCanceled},
	StatusProcessing: {StatusDelivering, StatusCanceled},
	StatusDelivering: {StatusCompleted, StatusCanceled},
	StatusCompleted:  {},
	StatusCanceled:   {},
}

// ParseStatus validates a raw value coming from a client or the database.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

func (s Status) Validate() error {
	if _, ok := statusTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// CanTransitionTo reports whether target is the current value or a legal next value.
func (s Status) CanTransitionTo(target Status) bool {
	return s == target || contains(statusTransitions[s], target)
}

// Path returns the shortest sequence of legal steps from s to target,
// excluding s itself. It is empty when s == target and ok is false when
// target is unreachable.
func (s Status) Path(target Status) ([]Status, bool) {
	return shortestPath(statusTransitions, s, target)
}

// DeliveryStatus is the logistics sub-lifecycle of an order.
//
//	none             -> pending, scheduled
//	pending          -> scheduled, out_for_delivery
//	scheduled        -> out_for_delivery, failed
//	out_for_delivery -> delivered, failed
//
// delivered and failed are terminal.
type DeliveryStatus string

const (
	DeliveryNone           DeliveryStatus = "none"
	DeliveryPending        DeliveryStatus = "pending"
	DeliveryScheduled      DeliveryStatus = "scheduled"
	DeliveryOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
	DeliveryFailed         DeliveryStatus = "failed"
)

var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryNone:           {DeliveryPending, DeliveryScheduled},
	DeliveryPending:        {DeliveryScheduled, DeliveryOutForDelivery},
	DeliveryScheduled:      {DeliveryOutForDelivery, DeliveryFailed},
	DeliveryOutForDelivery: {DeliveryDelivered, DeliveryFailed},
	DeliveryDelivered:      {},
	DeliveryFailed:         {},
}

func ParseDeliveryStatus(raw string) (DeliveryStatus, error) {
	s := DeliveryStatus(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

func (s DeliveryStatus) Validate() error {
	if _, ok := deliveryTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery_status",
			fmt.Errorf("%q is not a valid delivery status", string(s)))
	}
	return nil
}

func (s DeliveryStatus) String() string {
	return string(s)
}

func (s DeliveryStatus) IsTerminal() bool {
	return len(deliveryTransitions[s]) == 0
}

func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	return s == target || contains(deliveryTransitions[s], target)
}

func (s DeliveryStatus) Path(target DeliveryStatus) ([]DeliveryStatus, bool) {
	return shortestPath(deliveryTransitions, s, target)
}

func contains[T comparable](set []T, v T) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}

// shortestPath runs a breadth-first search over a transition table.
func shortestPath[T comparable](table map[T][]T, from, to T) ([]T, bool) {
	if from == to {
		return nil, true
	}

	prev := map[T]T{}
	visited := map[T]bool{from: true}
	queue := []T{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range table[cur] {
			if visited[next] {
				continue
			}
			visited[next] = true
			prev[next] = cur
			if next == to {
				return unwind(prev, from, to), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

func unwind[T comparable](prev map[T]T, from, to T) []T {
	var path []T
	for cur := to; cur != from; cur = prev[cur] {
		path = append([]T{cur}, path...)
	}
	return path
}
