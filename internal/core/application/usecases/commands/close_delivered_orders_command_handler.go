package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// CloseDeliveredOrdersCommandHandler finds delivering orders whose delivery
// is delivered and that have been idle long enough, and completes each one in
// its own unit of work through the regular transition rules.
type CloseDeliveredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewCloseDeliveredOrdersCommandHandler(uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) CloseDeliveredOrdersCommandHandler {
	return CloseDeliveredOrdersCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

// Handle returns the ids of the orders it completed. An order that changed
// between the scan and its lock is skipped.
func (h CloseDeliveredOrdersCommandHandler) Handle(ctx context.Context,
	cmd CloseDeliveredOrdersCommand,
) ([]int64, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-cmd.IdleFor())
	ids, err := h.findStale(ctx, cutoff, cmd.BatchSize())
	if err != nil {
		return nil, err
	}

	var closed []int64
	for _, id := range ids {
		_, changed, err := mutateOrder(ctx, h.uowFactory, h.notifier, byID(id),
			func(o *order.Order) (bool, error) {
				if !isStaleDelivered(o, cutoff) {
					return false, nil
				}
				by := order.Origin{
					Actor:  kernel.SystemActor(),
					Source: order.SourceSystem,
					At:     time.Now().UTC(),
					Notes:  "auto-closed after delivery",
				}
				return o.AdvanceStatus(order.StatusCompleted, by)
			},
			order.EventStatusChanged,
		)
		if err != nil {
			return closed, err
		}
		if changed {
			closed = append(closed, id)
		}
	}
	return closed, nil
}

func (h CloseDeliveredOrdersCommandHandler) findStale(ctx context.Context, cutoff time.Time,
	limit int,
) ([]int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().FindStaleDelivered(ctx, cutoff, limit)
}

func isStaleDelivered(o *order.Order, cutoff time.Time) bool {
	return o.Status() == order.StatusDelivering &&
		o.DeliveryStatus() == order.DeliveryDelivered &&
		!o.UpdatedAt().After(cutoff)
}
