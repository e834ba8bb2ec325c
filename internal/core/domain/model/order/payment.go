package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

type PaymentMethod string

const (
	PaymentDemo       PaymentMethod = "demo"
	PaymentStripeTest PaymentMethod = "stripe_test"
)

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch m := PaymentMethod(raw); m {
	case PaymentDemo, PaymentStripeTest:
		return m, nil
	case "":
		return PaymentDemo, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payment_method",
			fmt.Errorf("%q is not a valid payment method", raw))
	}
}

// PaymentStatus is driven by the payment collaborator. paid is final.
type PaymentStatus string

const (
	PaymentPending        PaymentStatus = "pending"
	PaymentRequiresAction PaymentStatus = "requires_action"
	PaymentPaid           PaymentStatus = "paid"
	PaymentFailed         PaymentStatus = "failed"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:        {PaymentRequiresAction, PaymentPaid, PaymentFailed},
	PaymentRequiresAction: {PaymentPaid, PaymentFailed},
	PaymentFailed:         {PaymentPending, PaymentRequiresAction, PaymentPaid},
	PaymentPaid:           {},
}

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	s := PaymentStatus(raw)
	if _, ok := paymentTransitions[s]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("payment_status",
			fmt.Errorf("%q is not a valid payment status", raw))
	}
	return s, nil
}

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	return s == target || contains(paymentTransitions[s], target)
}

// Payment groups the payment fields of an order.
type Payment struct {
	Method    PaymentMethod
	Status    PaymentStatus
	Reference string
	Metadata  map[string]any
}
