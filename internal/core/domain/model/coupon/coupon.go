package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

var ErrCouponIsNotConstructed = errors.New("coupon must be created via NewCoupon or RestoreCoupon")

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Reasons reported by InvalidReason and carried by errs.CouponInvalidError.
const (
	ReasonNotFound   = "not_found"
	ReasonInactive   = "inactive"
	ReasonNotStarted = "not_started"
	ReasonExpired    = "expired"
	ReasonExhausted  = "exhausted"
)

// Terms are the editable attributes of a coupon.
type Terms struct {
	Code              string
	Type              DiscountType
	Value             int64
	MaxDiscountAmount kernel.Money
	MinOrderTotal     kernel.Money
	UsageLimit        *int
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	IsActive          bool
	Notes             string
}

// Coupon is a discount definition. Its usage counter is only ever advanced by
// the store's conditional increment; the in-memory value is a read snapshot.
type Coupon struct {
	id            int64
	terms         Terms
	usedCount     int
	isConstructed bool
}

func NewCoupon(terms Terms) (*Coupon, error) {
	terms.Code = NormalizeCode(terms.Code)

	var problems []error
	if terms.Code == "" {
		problems = append(problems, errs.NewValueIsRequiredError("code"))
	}
	switch terms.Type {
	case DiscountPercent:
		if terms.Value < 1 || terms.Value > 100 {
			problems = append(problems, errs.NewValueIsOutOfRangeError("value", terms.Value, 1, 100))
		}
	case DiscountFixed:
		if terms.Value < 1 {
			problems = append(problems, errs.NewValueIsOutOfRangeError("value", terms.Value, 1, "unbounded"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("discount_type",
			fmt.Errorf("%q is not percent or fixed", terms.Type)))
	}
	if terms.MaxDiscountAmount < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("max_discount_amount"))
	}
	if terms.MinOrderTotal < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("min_order_total"))
	}
	if terms.UsageLimit != nil && *terms.UsageLimit < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("usage_limit"))
	}
	if terms.ValidFrom != nil && terms.ValidUntil != nil && terms.ValidUntil.Before(*terms.ValidFrom) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("valid_until",
			errors.New("window ends before it starts")))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Coupon{terms: terms, isConstructed: true}, nil
}

// RestoreCoupon rebuilds a stored coupon.
func RestoreCoupon(id int64, terms Terms, usedCount int) (*Coupon, error) {
	c, err := NewCoupon(terms)
	if err != nil {
		return nil, err
	}
	c.id = id
	c.usedCount = usedCount
	return c, nil
}

func (c *Coupon) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCouponIsNotConstructed
	}
	return nil
}

// AssignID is called by the repository after insert.
func (c *Coupon) AssignID(id int64) {
	c.id = id
}

func (c *Coupon) ID() int64      { return c.id }
func (c *Coupon) Code() string   { return c.terms.Code }
func (c *Coupon) Terms() Terms   { return c.terms }
func (c *Coupon) UsedCount() int { return c.usedCount }

// InvalidReason returns "" when the coupon is valid at now.
func (c *Coupon) InvalidReason(now time.Time) string {
	switch {
	case !c.terms.IsActive:
		return ReasonInactive
	case c.terms.ValidFrom != nil && now.Before(*c.terms.ValidFrom):
		return ReasonNotStarted
	case c.terms.ValidUntil != nil && now.After(*c.terms.ValidUntil):
		return ReasonExpired
	case c.terms.UsageLimit != nil && c.usedCount >= *c.terms.UsageLimit:
		return ReasonExhausted
	default:
		return ""
	}
}

// IsValid reports whether the coupon is active, inside its window and not exhausted.
func (c *Coupon) IsValid(now time.Time) bool {
	return c.InvalidReason(now) == ""
}

// CalculateDiscount returns 0 for an invalid coupon or a subtotal below the
// minimum. Otherwise the percent (floored) or fixed amount, capped by
// MaxDiscountAmount when positive and always by the subtotal.
func (c *Coupon) CalculateDiscount(subtotal kernel.Money, now time.Time) kernel.Money {
	if subtotal <= 0 || !c.IsValid(now) || subtotal < c.terms.MinOrderTotal {
		return 0
	}

	var discount kernel.Money
	switch c.terms.Type {
	case DiscountPercent:
		discount = subtotal * kernel.Money(c.terms.Value) / 100
	case DiscountFixed:
		discount = kernel.Money(c.terms.Value)
	}
	if c.terms.MaxDiscountAmount > 0 {
		discount = discount.Min(c.terms.MaxDiscountAmount)
	}
	return discount.Min(subtotal).NonNegative()
}

// Snapshot freezes the terms onto an order.
func (c *Coupon) Snapshot() order.CouponSnapshot {
	return order.CouponSnapshot{Type: string(c.terms.Type), Value: c.terms.Value}
}

// Applied builds the order-side reference to this coupon.
func (c *Coupon) Applied() *order.AppliedCoupon {
	id := c.id
	return &order.AppliedCoupon{ID: &id, Code: c.terms.Code, Snapshot: c.Snapshot()}
}

// NormalizeCode makes lookups case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
