package addressrepo

import (
	"time"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedAddressDTO maps saved_addresses. The partial unique indexes keep at
// most one default per owner.
type SavedAddressDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	OwnerUserID *int64 `gorm:"index;uniqueIndex:idx_saved_addresses_user_default,where:is_default"`
	OwnerEmail  string `gorm:"size:254;index;uniqueIndex:idx_saved_addresses_guest_default,where:is_default AND owner_user_id IS NULL"`
	Label       string `gorm:"size:64"`
	Address     string `gorm:"size:300;not null"`
	Entrance    string `gorm:"size:32"`
	Floor       string `gorm:"size:32"`
	Apartment   string `gorm:"size:32"`
	Intercom    string `gorm:"size:32"`
	Comment     string
	Latitude    *float64
	Longitude   *float64
	Meta        datatypes.JSONMap
	IsDefault   bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

func (SavedAddressDTO) TableName() string {
	return "saved_addresses"
}

func fromDomain(a *address.SavedAddress) SavedAddressDTO {
	d := a.Details()
	dto := SavedAddressDTO{
		ID:        a.ID(),
		Label:     d.Label,
		Address:   d.Address,
		Entrance:  d.Entrance,
		Floor:     d.Floor,
		Apartment: d.Apartment,
		Intercom:  d.Intercom,
		Comment:   d.Comment,
		Meta:      a.Meta(),
		IsDefault: a.IsDefault(),
		CreatedAt: a.CreatedAt(),
	}
	dto.OwnerUserID, dto.OwnerEmail = OwnerColumns(a.Owner())
	if p := a.Point(); p != nil {
		lat, lng := p.Latitude(), p.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lng
	}
	return dto
}

func toDomain(dto SavedAddressDTO) (*address.SavedAddress, error) {
	owner, err := RestoreOwner(dto.OwnerUserID, dto.OwnerEmail)
	if err != nil {
		return nil, err
	}

	var point *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return nil, err
		}
		point = &p
	}

	return address.RestoreSavedAddress(dto.ID, owner, address.Details{
		Label:     dto.Label,
		Address:   dto.Address,
		Entrance:  dto.Entrance,
		Floor:     dto.Floor,
		Apartment: dto.Apartment,
		Intercom:  dto.Intercom,
		Comment:   dto.Comment,
	}, point, dto.Meta, dto.IsDefault, dto.CreatedAt)
}

// OwnerColumns splits an identity into the owner_user_id and owner_email columns.
func OwnerColumns(owner kernel.Identity) (*int64, string) {
	if id, ok := owner.UserID(); ok {
		return &id, owner.Email()
	}
	return nil, owner.Email()
}

// RestoreOwner rebuilds the identity from the owner columns.
func RestoreOwner(userID *int64, email string) (kernel.Identity, error) {
	if userID != nil {
		return kernel.NewUserIdentity(*userID, email)
	}
	return kernel.NewGuestIdentity(email)
}

// ScopeOwner filters rows by owner: a user matches on user id, a guest on
// email among guest-owned rows.
func ScopeOwner(owner kernel.Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id, ok := owner.UserID(); ok {
			return db.Where("owner_user_id = ?", id)
		}
		return db.Where("owner_user_id IS NULL AND owner_email = ?", owner.Email())
	}
}
