package queries

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrQuoteCouponQueryIsNotConstructed = errors.New("QuoteCouponQuery must be created via NewQuoteCouponQuery")

// QuoteCouponQuery previews what a coupon would take off a subtotal. The
// answer is advisory: checkout evaluates the coupon again.
type QuoteCouponQuery struct {
	code     string
	subtotal kernel.Money
	guard    guard.ConstructorGuard
}

func NewQuoteCouponQuery(code string, subtotal kernel.Money) (QuoteCouponQuery, error) {
	code = strings.TrimSpace(code)
	var problems []error
	if code == "" {
		problems = append(problems, errs.NewValueIsRequiredError("code"))
	}
	if subtotal < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("subtotal"))
	}
	if err := errors.Join(problems...); err != nil {
		return QuoteCouponQuery{}, err
	}
	return QuoteCouponQuery{code: code, subtotal: subtotal, guard: guard.NewConstructorGuard()}, nil
}

func (q QuoteCouponQuery) Validate() error {
	return q.guard.Validate(ErrQuoteCouponQueryIsNotConstructed)
}

func (q QuoteCouponQuery) Code() string           { return q.code }
func (q QuoteCouponQuery) Subtotal() kernel.Money { return q.subtotal }

// QuoteCouponQueryResponse is what the storefront shows under the coupon field.
// Reason is empty for a usable coupon.
type QuoteCouponQueryResponse struct {
	Code     string
	Found    bool
	Valid    bool
	Reason   string
	Discount kernel.Money
	Snapshot *order.CouponSnapshot
}
