package commands

import (
	"errors"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrSaveAddressCommandIsNotConstructed = errors.New(
		"SaveAddressCommand must be created via NewSaveAddressCommand constructor",
	)
	ErrDeleteSavedAddressCommandIsNotConstructed = errors.New(
		"DeleteSavedAddressCommand must be created via NewDeleteSavedAddressCommand constructor",
	)
)

type SaveAddressCommand struct { //nolint:recvcheck //using for validation
	owner     kernel.Identity
	details   address.Details
	point     *kernel.GeoPoint
	isDefault bool
	guard     guard.ConstructorGuard
}

// NewSaveAddressCommand takes optional coordinates; both must be given to pin
// the address on the map.
func NewSaveAddressCommand(owner kernel.Identity, details address.Details, latitude, longitude *float64,
	isDefault bool,
) (SaveAddressCommand, error) {
	if err := owner.Validate(); err != nil {
		return SaveAddressCommand{}, err
	}
	cmd := SaveAddressCommand{owner: owner, details: details, isDefault: isDefault, guard: guard.NewConstructorGuard()}
	if latitude != nil && longitude != nil {
		p, err := kernel.NewGeoPoint(*latitude, *longitude)
		if err != nil {
			return SaveAddressCommand{}, err
		}
		cmd.point = &p
	}
	return cmd, nil
}

func (c SaveAddressCommand) Validate() error {
	return c.guard.Validate(ErrSaveAddressCommandIsNotConstructed)
}

func (c SaveAddressCommand) Owner() kernel.Identity   { return c.owner }
func (c SaveAddressCommand) Details() address.Details { return c.details }
func (c SaveAddressCommand) Point() *kernel.GeoPoint  { return c.point }
func (c SaveAddressCommand) IsDefault() bool          { return c.isDefault }

type DeleteSavedAddressCommand struct { //nolint:recvcheck //using for validation
	owner kernel.Identity
	id    int64
	guard guard.ConstructorGuard
}

func NewDeleteSavedAddressCommand(owner kernel.Identity, id int64) (DeleteSavedAddressCommand, error) {
	if err := owner.Validate(); err != nil {
		return DeleteSavedAddressCommand{}, err
	}
	if id <= 0 {
		return DeleteSavedAddressCommand{}, errs.NewValueIsRequiredError("address id")
	}
	return DeleteSavedAddressCommand{owner: owner, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteSavedAddressCommand) Validate() error {
	return c.guard.Validate(ErrDeleteSavedAddressCommandIsNotConstructed)
}

func (c DeleteSavedAddressCommand) Owner() kernel.Identity { return c.owner }
func (c DeleteSavedAddressCommand) ID() int64              { return c.id }
