package order

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Totals holds the money fields of an order.
// total == max(subtotal - discount + deliveryFee, 0) and 0 <= discount <= subtotal.
type Totals struct {
	subtotal    kernel.Money
	discount    kernel.Money
	deliveryFee kernel.Money
	total       kernel.Money
}

func NewTotals(subtotal, discount, deliveryFee kernel.Money) (Totals, error) {
	if subtotal < 0 {
		return Totals{}, errs.NewValueIsOutOfRangeError("subtotal", subtotal, 0, "unbounded")
	}
	if discount < 0 || discount > subtotal {
		return Totals{}, errs.NewValueIsOutOfRangeError("discount", discount, 0, subtotal)
	}
	if deliveryFee < 0 {
		return Totals{}, errs.NewValueIsOutOfRangeError("deliveryFee", deliveryFee, 0, "unbounded")
	}

	return Totals{
		subtotal:    subtotal,
		discount:    discount,
		deliveryFee: deliveryFee,
		total:       (subtotal - discount + deliveryFee).NonNegative(),
	}, nil
}

// RestoreTotals rebuilds persisted totals and rejects rows that break the invariant.
func RestoreTotals(subtotal, discount, deliveryFee, total kernel.Money) (Totals, error) {
	t, err := NewTotals(subtotal, discount, deliveryFee)
	if err != nil {
		return Totals{}, err
	}
	if t.total != total {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("stored total %d, expected %d", total, t.total))
	}
	return t, nil
}

func (t Totals) Subtotal() kernel.Money    { return t.subtotal }
func (t Totals) Discount() kernel.Money    { return t.discount }
func (t Totals) DeliveryFee() kernel.Money { return t.deliveryFee }
func (t Totals) Total() kernel.Money       { return t.total }
