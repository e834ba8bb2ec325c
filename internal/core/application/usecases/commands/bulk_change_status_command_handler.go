package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

const bulkNotes = "bulk"

// BulkResult reports per order what a bulk action did.
type BulkResult struct {
	Changed   []int64
	Unchanged []int64
	Failed    map[int64]error
}

// BulkChangeStatusCommandHandler moves each order in its own unit of work:
// status first, then delivery status. An order whose either transition is
// illegal is left untouched; one order failing does not stop the others.
type BulkChangeStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewBulkChangeStatusCommandHandler(uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) BulkChangeStatusCommandHandler {
	return BulkChangeStatusCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h BulkChangeStatusCommandHandler) Handle(ctx context.Context, cmd BulkChangeStatusCommand) (BulkResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkResult{}, err
	}

	result := BulkResult{Failed: map[int64]error{}}
	for _, id := range cmd.OrderIDs() {
		changed, err := h.apply(ctx, id, cmd)
		switch {
		case err != nil:
			result.Failed[id] = err
		case changed:
			result.Changed = append(result.Changed, id)
		default:
			result.Unchanged = append(result.Unchanged, id)
		}
	}
	return result, nil
}

func (h BulkChangeStatusCommandHandler) apply(ctx context.Context, id int64, cmd BulkChangeStatusCommand) (bool, error) {
	by := order.Origin{Actor: cmd.Actor(), Source: order.SourceAPI, At: time.Now().UTC(), Notes: bulkNotes}
	_, changed, err := mutateOrder(ctx, h.uowFactory, h.notifier, byID(id),
		func(o *order.Order) (bool, error) {
			var statusChanged, deliveryChanged bool
			if cmd.Status() != "" {
				c, err := o.ChangeStatus(cmd.Status(), by)
				if err != nil {
					return false, err
				}
				statusChanged = c
			}
			if cmd.DeliveryStatus() != "" {
				c, err := o.ChangeDeliveryStatus(cmd.DeliveryStatus(), by)
				if err != nil {
					return false, err
				}
				deliveryChanged = c
			}
			return statusChanged || deliveryChanged, nil
		},
		order.EventStatusChanged, order.EventDeliveryStatusChanged,
	)
	return changed, err
}
