package queries

import (
	"errors"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderLinksQueryIsNotConstructed = errors.New("GetOrderLinksQuery must be created via NewGetOrderLinksQuery")

// GetOrderLinksQuery builds fresh capability URLs for every link action of an order.
type GetOrderLinksQuery struct {
	orderID int64
	guard   guard.ConstructorGuard
}

func NewGetOrderLinksQuery(orderID int64) (GetOrderLinksQuery, error) {
	if orderID <= 0 {
		return GetOrderLinksQuery{}, errs.NewValueIsInvalidError("order id")
	}
	return GetOrderLinksQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderLinksQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderLinksQueryIsNotConstructed)
}

func (q GetOrderLinksQuery) OrderID() int64 { return q.orderID }

// GetOrderLinksQueryResponse maps each action to its absolute URL.
type GetOrderLinksQueryResponse map[link.Action]string
