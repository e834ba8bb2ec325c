package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// RequestDeliveryCommandHandler moves the order to delivering and the
// delivery to scheduled in one unit of work. Only the delivery request itself
// is announced; the intermediate transitions are recorded but not notified.
type RequestDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewRequestDeliveryCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) RequestDeliveryCommandHandler {
	return RequestDeliveryCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h RequestDeliveryCommandHandler) Handle(ctx context.Context, cmd RequestDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	by := order.Origin{Actor: cmd.Actor(), Source: order.SourceAPI, At: time.Now().UTC()}
	o, _, err := mutateOrder(ctx, h.uowFactory, h.notifier, byID(cmd.OrderID()),
		func(o *order.Order) (bool, error) {
			return true, o.RequestDelivery(cmd.Request(), by)
		},
		order.EventDeliveryRequested,
	)
	return o, err
}
