package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListSavedAddressesQueryHandler struct {
	db *gorm.DB
}

func NewListSavedAddressesQueryHandler(db *gorm.DB) ListSavedAddressesQueryHandler {
	return ListSavedAddressesQueryHandler{db: db}
}

// Handle returns the default address first, then the newest.
func (h ListSavedAddressesQueryHandler) Handle(ctx context.Context,
	query ListSavedAddressesQuery,
) ([]ListSavedAddressesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "owner_user_id IS NULL AND owner_email = ?"
	var arg any = query.Owner().Email()
	if userID, ok := query.Owner().UserID(); ok {
		where = "owner_user_id = ?"
		arg = userID
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			label,
			address,
			entrance,
			floor,
			apartment,
			intercom,
			comment,
			latitude,
			longitude,
			is_default
		FROM saved_addresses
		WHERE `+where+`
		ORDER BY is_default DESC, created_at DESC, id DESC
	`, arg).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := make([]ListSavedAddressesQueryResponse, 0)
	for rows.Next() {
		var a ListSavedAddressesQueryResponse
		if err := rows.Scan(
			&a.ID,
			&a.Label,
			&a.Address,
			&a.Entrance,
			&a.Floor,
			&a.Apartment,
			&a.Intercom,
			&a.Comment,
			&a.Latitude,
			&a.Longitude,
			&a.IsDefault,
		); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}
