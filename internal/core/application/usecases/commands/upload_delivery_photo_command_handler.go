package commands

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// UploadDeliveryPhotoCommandHandler stores the photo and attaches it to the
// order. The file is only written after the token has been verified and is
// removed again when the order cannot be saved.
type UploadDeliveryPhotoCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   LinkResolver
	storage    ports.PhotoStorage
	notifier   ports.Notifier
}

func NewUploadDeliveryPhotoCommandHandler(uowFactory OrderUoWFactory, signer ports.LinkSigner,
	storage ports.PhotoStorage, notifier ports.Notifier,
) UploadDeliveryPhotoCommandHandler {
	return UploadDeliveryPhotoCommandHandler{
		uowFactory: uowFactory,
		resolver:   NewLinkResolver(signer),
		storage:    storage,
		notifier:   notifier,
	}
}

func (h UploadDeliveryPhotoCommandHandler) Handle(ctx context.Context,
	cmd UploadDeliveryPhotoCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var saved string
	o, _, err := mutateOrder(ctx, h.uowFactory, h.notifier, byLink(h.resolver, link.ActionPhoto, cmd.Token()),
		func(o *order.Order) (bool, error) {
			by := linkOrigin(o)
			name := fmt.Sprintf("order_%d_%s_%s", o.ID(), by.At.Format("20060102_150405"), cmd.Filename())
			ref, err := h.storage.Save(ctx, name, cmd.Content())
			if err != nil {
				return false, err
			}
			saved = ref
			return true, o.AttachDeliveryPhoto(ref, by)
		},
		order.EventDeliveryStatusChanged,
	)
	if err != nil && saved != "" {
		if rmErr := h.storage.Delete(context.WithoutCancel(ctx), saved); rmErr != nil {
			err = errors.Join(err, rmErr)
		}
	}
	return o, err
}
