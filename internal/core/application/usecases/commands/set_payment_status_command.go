package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrSetPaymentStatusCommandIsNotConstructed = errors.New(
	"SetPaymentStatusCommand must be created via NewSetPaymentStatusCommand constructor",
)

// SetPaymentStatusCommand applies a status reported by the payment provider.
// The order is addressed either by id or by the provider's payment reference.
type SetPaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   int64
	reference string
	status    order.PaymentStatus
	guard     guard.ConstructorGuard
}

func NewSetPaymentStatusCommand(orderID int64, reference, status string) (SetPaymentStatusCommand, error) {
	reference = strings.TrimSpace(reference)
	var problems []error
	if orderID <= 0 && reference == "" {
		problems = append(problems, errs.NewValueIsRequiredError("order id or payment reference"))
	}
	target, err := order.ParsePaymentStatus(strings.TrimSpace(status))
	problems = append(problems, err)
	if err = errors.Join(problems...); err != nil {
		return SetPaymentStatusCommand{}, err
	}
	return SetPaymentStatusCommand{
		orderID:   orderID,
		reference: reference,
		status:    target,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetPaymentStatusCommandIsNotConstructed)
}

func (c SetPaymentStatusCommand) OrderID() int64              { return c.orderID }
func (c SetPaymentStatusCommand) Reference() string           { return c.reference }
func (c SetPaymentStatusCommand) Status() order.PaymentStatus { return c.status }
