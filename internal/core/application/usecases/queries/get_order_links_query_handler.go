package queries

import (
	"context"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/ports"
)

type GetOrderLinksQueryHandler struct {
	orders  ports.OrderRepository
	builder ports.LinkBuilder
}

func NewGetOrderLinksQueryHandler(orders ports.OrderRepository, builder ports.LinkBuilder) GetOrderLinksQueryHandler {
	return GetOrderLinksQueryHandler{orders: orders, builder: builder}
}

func (h GetOrderLinksQueryHandler) Handle(ctx context.Context,
	query GetOrderLinksQuery,
) (GetOrderLinksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.orders.Get(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	links := make(GetOrderLinksQueryResponse, len(link.Actions()))
	for _, action := range link.Actions() {
		url, err := h.builder.URL(action, query.OrderID())
		if err != nil {
			return nil, err
		}
		links[action] = url
	}
	return links, nil
}
