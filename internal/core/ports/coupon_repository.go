package ports

import (
	"context"

	"storefront/internal/core/domain/model/coupon"
)

type CouponRepository interface {
	// GetByCode looks a coupon up case-insensitively.
	// Returns errs.ObjectNotFoundError when there is none.
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// Redeem increments the usage counter if the coupon is still below its
	// usage limit, in a single conditional statement. It reports false when
	// no row was updated, meaning the coupon was exhausted concurrently.
	Redeem(ctx context.Context, id int64) (bool, error)

	Add(ctx context.Context, c *coupon.Coupon) error
}
