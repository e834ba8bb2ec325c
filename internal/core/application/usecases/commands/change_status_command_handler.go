package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// ChangeStatusCommandHandler applies a single status transition. Setting the
// current status again is a no-op: nothing is written and nobody is notified.
type ChangeStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewChangeStatusCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) ChangeStatusCommandHandler {
	return ChangeStatusCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h ChangeStatusCommandHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	by := order.Origin{Actor: cmd.Actor(), Source: order.SourceAPI, At: time.Now().UTC(), Notes: cmd.Notes()}
	o, _, err := mutateOrder(ctx, h.uowFactory, h.notifier, byID(cmd.OrderID()),
		func(o *order.Order) (bool, error) {
			return o.ChangeStatus(cmd.Status(), by)
		},
		order.EventStatusChanged,
	)
	return o, err
}

// ChangeDeliveryStatusCommandHandler applies a single delivery transition.
type ChangeDeliveryStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

func NewChangeDeliveryStatusCommandHandler(uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h ChangeDeliveryStatusCommandHandler) Handle(ctx context.Context,
	cmd ChangeDeliveryStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	by := order.Origin{Actor: cmd.Actor(), Source: order.SourceAPI, At: time.Now().UTC(), Notes: cmd.Notes()}
	o, _, err := mutateOrder(ctx, h.uowFactory, h.notifier, byID(cmd.OrderID()),
		func(o *order.Order) (bool, error) {
			return o.ChangeDeliveryStatus(cmd.Status(), by)
		},
		order.EventDeliveryStatusChanged,
	)
	return o, err
}
