package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/address"
)

// SaveAddressCommandHandler stores a saved address. A new default clears the
// owner's previous default in the same transaction, under the owner lock.
type SaveAddressCommandHandler struct {
	uowFactory AddressUoWFactory
}

func NewSaveAddressCommandHandler(uowFactory AddressUoWFactory) SaveAddressCommandHandler {
	return SaveAddressCommandHandler{uowFactory: uowFactory}
}

func (h SaveAddressCommandHandler) Handle(ctx context.Context, cmd SaveAddressCommand) (*address.SavedAddress, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	a, err := address.NewSavedAddress(cmd.Owner(), cmd.Details(), cmd.Point(), cmd.IsDefault(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SavedAddressRepository()
	if a.IsDefault() {
		if err = repo.LockOwner(ctx, a.Owner()); err != nil {
			return nil, err
		}
		if err = repo.ClearDefault(ctx, a.Owner()); err != nil {
			return nil, err
		}
	}

	if err = repo.Add(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// DeleteSavedAddressCommandHandler removes an address the caller owns.
// Orders that referenced it keep their copied address text.
type DeleteSavedAddressCommandHandler struct {
	uowFactory AddressUoWFactory
}

func NewDeleteSavedAddressCommandHandler(uowFactory AddressUoWFactory) DeleteSavedAddressCommandHandler {
	return DeleteSavedAddressCommandHandler{uowFactory: uowFactory}
}

func (h DeleteSavedAddressCommandHandler) Handle(ctx context.Context, cmd DeleteSavedAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SavedAddressRepository().Delete(ctx, cmd.ID(), cmd.Owner()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
