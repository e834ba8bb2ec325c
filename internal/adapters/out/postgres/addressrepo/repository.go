// Package addressrepo persists customers' saved addresses.
package addressrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormSavedAddressRepository struct {
	db *gorm.DB
}

func NewGormSavedAddressRepository(db *gorm.DB) *GormSavedAddressRepository {
	return &GormSavedAddressRepository{db: db}
}

func (r *GormSavedAddressRepository) Add(ctx context.Context, a *address.SavedAddress) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	a.AssignID(dto.ID)
	return nil
}

func (r *GormSavedAddressRepository) GetOwned(ctx context.Context, id int64,
	owner kernel.Identity,
) (*address.SavedAddress, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	var dto SavedAddressDTO
	err := r.db.WithContext(ctx).Scopes(ScopeOwner(owner)).First(&dto, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("saved address", id)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormSavedAddressRepository) FindByText(ctx context.Context, owner kernel.Identity,
	text string,
) (*address.SavedAddress, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	var dto SavedAddressDTO
	err := r.db.WithContext(ctx).
		Scopes(ScopeOwner(owner)).
		Order("id").
		First(&dto, "address = ?", text).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("saved address", text)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// LockOwner takes a transaction-scoped advisory lock on the owner. Outside a
// transaction it is released as soon as the statement ends.
func (r *GormSavedAddressRepository) LockOwner(ctx context.Context, owner kernel.Identity) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", "saved_addresses:"+owner.OwnerKey()).Error
}

func (r *GormSavedAddressRepository) ClearDefault(ctx context.Context, owner kernel.Identity) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&SavedAddressDTO{}).
		Scopes(ScopeOwner(owner)).
		Where("is_default").
		Update("is_default", false).Error
}

// Delete removes the address if owner owns it. Orders referencing it keep
// their copied address text; the reference is nulled by the foreign key.
func (r *GormSavedAddressRepository) Delete(ctx context.Context, id int64, owner kernel.Identity) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Scopes(ScopeOwner(owner)).Delete(&SavedAddressDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("saved address", id)
	}
	return nil
}
