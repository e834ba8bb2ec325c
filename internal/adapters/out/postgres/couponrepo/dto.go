package couponrepo

import (
	"time"

	"storefront/internal/core/domain/model/coupon"
	"storefront/internal/core/domain/model/kernel"
)

type CouponDTO struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	Code              string `gorm:"size:64;uniqueIndex"`
	DiscountType      string `gorm:"size:16"`
	Value             int64
	MaxDiscountAmount int64
	MinOrderTotal     int64
	UsageLimit        *int
	UsedCount         int `gorm:"not null;default:0"`
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	IsActive          bool `gorm:"not null"`
	Notes             string
	CreatedAt         time.Time
}

func (CouponDTO) TableName() string {
	return "coupons"
}

func fromDomain(c *coupon.Coupon) CouponDTO {
	t := c.Terms()
	return CouponDTO{
		ID:                c.ID(),
		Code:              t.Code,
		DiscountType:      string(t.Type),
		Value:             t.Value,
		MaxDiscountAmount: t.MaxDiscountAmount.Int64(),
		MinOrderTotal:     t.MinOrderTotal.Int64(),
		UsageLimit:        t.UsageLimit,
		UsedCount:         c.UsedCount(),
		ValidFrom:         t.ValidFrom,
		ValidUntil:        t.ValidUntil,
		IsActive:          t.IsActive,
		Notes:             t.Notes,
	}
}

func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	return coupon.RestoreCoupon(dto.ID, coupon.Terms{
		Code:              dto.Code,
		Type:              coupon.DiscountType(dto.DiscountType),
		Value:             dto.Value,
		MaxDiscountAmount: kernel.Money(dto.MaxDiscountAmount),
		MinOrderTotal:     kernel.Money(dto.MinOrderTotal),
		UsageLimit:        dto.UsageLimit,
		ValidFrom:         dto.ValidFrom,
		ValidUntil:        dto.ValidUntil,
		IsActive:          dto.IsActive,
		Notes:             dto.Notes,
	}, dto.UsedCount)
}
