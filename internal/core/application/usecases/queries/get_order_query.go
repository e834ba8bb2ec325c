package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery")

// GetOrderQuery loads one order. Customers see only their own orders; staff
// queries are not scoped.
type GetOrderQuery struct {
	orderID int64
	viewer  kernel.Identity
	staff   bool
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID int64, viewer kernel.Identity) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidError("order id")
	}
	if err := viewer.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func NewStaffGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidError("order id")
	}
	return GetOrderQuery{orderID: orderID, staff: true, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() int64          { return q.orderID }
func (q GetOrderQuery) Viewer() kernel.Identity { return q.viewer }
func (q GetOrderQuery) IsStaff() bool           { return q.staff }
