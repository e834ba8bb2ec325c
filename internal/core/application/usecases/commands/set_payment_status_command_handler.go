package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// SetPaymentStatusCommandHandler is idempotent: delivering the same provider
// event twice leaves exactly one event and one audit entry.
type SetPaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetPaymentStatusCommandHandler(uowFactory OrderUoWFactory) SetPaymentStatusCommandHandler {
	return SetPaymentStatusCommandHandler{uowFactory: uowFactory}
}

func (h SetPaymentStatusCommandHandler) Handle(ctx context.Context, cmd SetPaymentStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	load := byID(cmd.OrderID())
	if cmd.OrderID() <= 0 {
		load = func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
			return repo.GetByPaymentReference(ctx, cmd.Reference())
		}
	}

	by := order.Origin{Actor: kernel.SystemActor(), Source: order.SourceSystem, At: time.Now().UTC()}
	o, _, err := mutateOrder(ctx, h.uowFactory, nil, load,
		func(o *order.Order) (bool, error) {
			return o.SetPaymentStatus(cmd.Status(), by)
		},
	)
	return o, err
}
