package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrChangeStatusCommandIsNotConstructed = errors.New(
		"ChangeStatusCommand must be created via NewChangeStatusCommand constructor",
	)
	ErrChangeDeliveryStatusCommandIsNotConstructed = errors.New(
		"ChangeDeliveryStatusCommand must be created via NewChangeDeliveryStatusCommand constructor",
	)
)

// ChangeStatusCommand is an operator's request to move an order to another status.
type ChangeStatusCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	status  order.Status
	actor   kernel.Actor
	notes   string

	guard guard.ConstructorGuard
}

func NewChangeStatusCommand(orderID int64, status string, actor kernel.Actor, notes string) (ChangeStatusCommand, error) {
	target, err := order.ParseStatus(strings.TrimSpace(status))
	if err = errors.Join(validateOrderID(orderID), err); err != nil {
		return ChangeStatusCommand{}, err
	}
	return ChangeStatusCommand{
		orderID: orderID,
		status:  target,
		actor:   actor,
		notes:   strings.TrimSpace(notes),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStatusCommandIsNotConstructed)
}

func (c ChangeStatusCommand) OrderID() int64       { return c.orderID }
func (c ChangeStatusCommand) Status() order.Status { return c.status }
func (c ChangeStatusCommand) Actor() kernel.Actor  { return c.actor }
func (c ChangeStatusCommand) Notes() string        { return c.notes }

// ChangeDeliveryStatusCommand is an operator's or courier's delivery update.
type ChangeDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	status  order.DeliveryStatus
	actor   kernel.Actor
	notes   string

	guard guard.ConstructorGuard
}

func NewChangeDeliveryStatusCommand(orderID int64, status string, actor kernel.Actor,
	notes string,
) (ChangeDeliveryStatusCommand, error) {
	target, err := order.ParseDeliveryStatus(strings.TrimSpace(status))
	if err = errors.Join(validateOrderID(orderID), err); err != nil {
		return ChangeDeliveryStatusCommand{}, err
	}
	return ChangeDeliveryStatusCommand{
		orderID: orderID,
		status:  target,
		actor:   actor,
		notes:   strings.TrimSpace(notes),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDeliveryStatusCommandIsNotConstructed)
}

func (c ChangeDeliveryStatusCommand) OrderID() int64               { return c.orderID }
func (c ChangeDeliveryStatusCommand) Status() order.DeliveryStatus { return c.status }
func (c ChangeDeliveryStatusCommand) Actor() kernel.Actor          { return c.actor }
func (c ChangeDeliveryStatusCommand) Notes() string                { return c.notes }

func validateOrderID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	return nil
}
