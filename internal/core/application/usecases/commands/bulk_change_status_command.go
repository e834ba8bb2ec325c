package commands

import (
	"errors"
	"slices"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrBulkChangeStatusCommandIsNotConstructed = errors.New(
	"BulkChangeStatusCommand must be created via NewBulkChangeStatusCommand constructor",
)

// BulkChangeStatusCommand is the admin action that moves several orders at
// once. Either target may be empty; at least one is required.
type BulkChangeStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs       []int64
	status         order.Status
	deliveryStatus order.DeliveryStatus
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

func NewBulkChangeStatusCommand(orderIDs []int64, status, deliveryStatus string,
	actor kernel.Actor,
) (BulkChangeStatusCommand, error) {
	status, deliveryStatus = strings.TrimSpace(status), strings.TrimSpace(deliveryStatus)

	var errList []error
	if len(orderIDs) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("order ids"))
	}
	if status == "" && deliveryStatus == "" {
		errList = append(errList, errs.NewValueIsRequiredError("status or delivery status"))
	}

	var target order.Status
	if status != "" {
		parsed, err := order.ParseStatus(status)
		errList = append(errList, err)
		target = parsed
	}
	var deliveryTarget order.DeliveryStatus
	if deliveryStatus != "" {
		parsed, err := order.ParseDeliveryStatus(deliveryStatus)
		errList = append(errList, err)
		deliveryTarget = parsed
	}
	if err := errors.Join(errList...); err != nil {
		return BulkChangeStatusCommand{}, err
	}

	ids := slices.Clone(orderIDs)
	slices.Sort(ids)
	return BulkChangeStatusCommand{
		orderIDs:       slices.Compact(ids),
		status:         target,
		deliveryStatus: deliveryTarget,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c BulkChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkChangeStatusCommandIsNotConstructed)
}

func (c BulkChangeStatusCommand) OrderIDs() []int64 { return slices.Clone(c.orderIDs) }

// Status is empty when the order status is left alone.
func (c BulkChangeStatusCommand) Status() order.Status { return c.status }

// DeliveryStatus is empty when the delivery status is left alone.
func (c BulkChangeStatusCommand) DeliveryStatus() order.DeliveryStatus { return c.deliveryStatus }

func (c BulkChangeStatusCommand) Actor() kernel.Actor { return c.actor }
