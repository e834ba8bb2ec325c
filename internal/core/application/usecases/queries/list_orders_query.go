package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery")

const (
	DefaultOrdersPageSize = 20
	MaxOrdersPageSize     = 100
)

// ListOrdersQuery lists the orders of one owner, newest first. A signed-in
// user sees the orders placed under their account; a guest sees the orders
// placed as a guest with their email.
type ListOrdersQuery struct {
	owner kernel.Identity
	limit int
	guard guard.ConstructorGuard
}

// NewListOrdersQuery uses DefaultOrdersPageSize when limit is 0.
func NewListOrdersQuery(owner kernel.Identity, limit int) (ListOrdersQuery, error) {
	if err := owner.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if limit == 0 {
		limit = DefaultOrdersPageSize
	}
	if limit < 1 || limit > MaxOrdersPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOrdersPageSize)
	}
	return ListOrdersQuery{owner: owner, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Owner() kernel.Identity { return q.owner }
func (q ListOrdersQuery) Limit() int             { return q.limit }

// ListOrdersQueryResponse is one row of an order history page.
type ListOrdersQueryResponse struct {
	ID             int64
	Status         string
	DeliveryStatus string
	PaymentStatus  string
	Total          kernel.Money
	ItemCount      int
	CouponCode     string
	IsGift         bool
	CreatedAt      time.Time
}
