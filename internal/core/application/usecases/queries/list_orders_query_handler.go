package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "o.owner_user_id IS NULL AND o.owner_email = ?"
	var arg any = query.Owner().Email()
	if userID, ok := query.Owner().UserID(); ok {
		where = "o.owner_user_id = ?"
		arg = userID
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.delivery_status,
			o.payment_status,
			o.total,
			COALESCE(SUM(i.qty), 0),
			o.coupon_code,
			o.gift_is_gift,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE `+where+`
		GROUP BY o.id
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ?
	`, arg, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var r ListOrdersQueryResponse
		var total int64
		if err := rows.Scan(
			&r.ID,
			&r.Status,
			&r.DeliveryStatus,
			&r.PaymentStatus,
			&total,
			&r.ItemCount,
			&r.CouponCode,
			&r.IsGift,
			&r.CreatedAt,
		); err != nil {
			return nil, err
		}
		r.Total = kernel.Money(total)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
