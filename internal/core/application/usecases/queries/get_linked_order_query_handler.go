package queries

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type GetLinkedOrderQueryHandler struct {
	signer ports.LinkSigner
	orders ports.OrderRepository
}

func NewGetLinkedOrderQueryHandler(signer ports.LinkSigner, orders ports.OrderRepository) GetLinkedOrderQueryHandler {
	return GetLinkedOrderQueryHandler{signer: signer, orders: orders}
}

func (h GetLinkedOrderQueryHandler) Handle(ctx context.Context, query GetLinkedOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	id, err := h.signer.Resolve(query.Action(), query.Token())
	if err != nil {
		return nil, errs.ErrInvalidLink
	}

	o, err := h.orders.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.ErrInvalidLink
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}
