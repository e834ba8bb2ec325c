package queries

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetDeliverySlotsQueryIsNotConstructed = errors.New(
	"GetDeliverySlotsQuery must be created via NewGetDeliverySlotsQuery",
)

// GetDeliverySlotsQuery lists the windows still bookable at a moment.
type GetDeliverySlotsQuery struct {
	at    time.Time
	guard guard.ConstructorGuard
}

func NewGetDeliverySlotsQuery(at time.Time) (GetDeliverySlotsQuery, error) {
	if at.IsZero() {
		return GetDeliverySlotsQuery{}, errs.NewValueIsRequiredError("at")
	}
	return GetDeliverySlotsQuery{at: at, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliverySlotsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliverySlotsQueryIsNotConstructed)
}

func (q GetDeliverySlotsQuery) At() time.Time { return q.at }

type GetDeliverySlotsQueryResponse struct {
	Value    string
	Day      string
	DayLabel string
	Window   string
	StartsAt time.Time
}
