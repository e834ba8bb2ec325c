package services

import (
	"time"

	"storefront/internal/core/domain/model/coupon"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// Quote is the outcome of pricing a basket.
type Quote struct {
	Totals order.Totals
	// Coupon is set only when the coupon produced a positive discount.
	Coupon *order.AppliedCoupon
}

// OrderPricer computes order totals from item snapshots, an optional coupon
// and the configured delivery fee.
//
// Business rules:
//   - subtotal is the sum of price at purchase times quantity
//   - a coupon that is not valid at the pricing instant is rejected with
//     errs.CouponInvalidError; a valid coupon that yields no discount is ignored
//   - total = max(subtotal - discount + deliveryFee, 0)
//
// Example usage:
//
//	pricer := NewOrderPricer(kernel.Money(1500))
//	quote, err := pricer.Price(items, love10, time.Now())
//	if errors.Is(err, errs.ErrCouponInvalid) {
//	    // Tell the customer the code no longer works
//	}
type OrderPricer struct {
	deliveryFee kernel.Money
}

// NewOrderPricer builds a pricer. A negative fee is treated as zero.
func NewOrderPricer(deliveryFee kernel.Money) OrderPricer {
	return OrderPricer{deliveryFee: deliveryFee.NonNegative()}
}

func (p OrderPricer) DeliveryFee() kernel.Money {
	return p.deliveryFee
}

// Subtotal sums line totals.
func (p OrderPricer) Subtotal(items []order.Item) kernel.Money {
	var subtotal kernel.Money
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	return subtotal
}

// Price applies c (which may be nil) to items at now. A usable coupon whose
// minimum order total is not reached gives no discount and is not attached.
func (p OrderPricer) Price(items []order.Item, c *coupon.Coupon, now time.Time) (Quote, error) {
	subtotal := p.Subtotal(items)

	var (
		discount kernel.Money
		applied  *order.AppliedCoupon
	)
	if c != nil {
		if reason := c.InvalidReason(now); reason != "" {
			return Quote{}, errs.NewCouponInvalidError(c.Code(), reason)
		}
		discount = c.CalculateDiscount(subtotal, now)
		if discount > 0 {
			applied = c.Applied()
		}
	}

	totals, err := order.NewTotals(subtotal, discount, p.deliveryFee)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Totals: totals, Coupon: applied}, nil
}
