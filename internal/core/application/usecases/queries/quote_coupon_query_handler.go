package queries

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/coupon"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type QuoteCouponQueryHandler struct {
	coupons ports.CouponRepository
}

func NewQuoteCouponQueryHandler(coupons ports.CouponRepository) QuoteCouponQueryHandler {
	return QuoteCouponQueryHandler{coupons: coupons}
}

// Handle answers unknown and unusable coupons with a reason instead of an error.
func (h QuoteCouponQueryHandler) Handle(ctx context.Context, query QuoteCouponQuery) (QuoteCouponQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteCouponQueryResponse{}, err
	}

	resp := QuoteCouponQueryResponse{Code: coupon.NormalizeCode(query.Code())}
	c, err := h.coupons.GetByCode(ctx, query.Code())
	if errors.Is(err, errs.ErrObjectNotFound) {
		resp.Reason = coupon.ReasonNotFound
		return resp, nil
	}
	if err != nil {
		return QuoteCouponQueryResponse{}, err
	}

	now := time.Now().UTC()
	snapshot := c.Snapshot()
	resp.Found = true
	resp.Snapshot = &snapshot
	resp.Reason = c.InvalidReason(now)
	resp.Valid = resp.Reason == ""
	resp.Discount = c.CalculateDiscount(query.Subtotal(), now)
	return resp, nil
}
