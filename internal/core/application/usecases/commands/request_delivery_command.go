package commands

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrRequestDeliveryCommandIsNotConstructed = errors.New(
	"RequestDeliveryCommand must be created via NewRequestDeliveryCommand constructor",
)

// RequestDeliveryCommand schedules delivery of an order. Either an exact
// datetime or a day plus a "HH:MM-HH:MM" slot may be given.
type RequestDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	request order.DeliveryRequest
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewRequestDeliveryCommand(orderID int64, address string, at, day *time.Time, slot, comment string,
	actor kernel.Actor,
) (RequestDeliveryCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return RequestDeliveryCommand{}, err
	}
	slot = strings.TrimSpace(slot)
	if at == nil && day != nil && slot != "" {
		if _, err := order.SlotStart(*day, slot); err != nil {
			return RequestDeliveryCommand{}, err
		}
	}
	return RequestDeliveryCommand{
		orderID: orderID,
		request: order.DeliveryRequest{
			Address:  strings.TrimSpace(address),
			DateTime: at,
			Day:      day,
			Slot:     slot,
			Comment:  strings.TrimSpace(comment),
		},
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RequestDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRequestDeliveryCommandIsNotConstructed)
}

func (c RequestDeliveryCommand) OrderID() int64                 { return c.orderID }
func (c RequestDeliveryCommand) Request() order.DeliveryRequest { return c.request }
func (c RequestDeliveryCommand) Actor() kernel.Actor            { return c.actor }
