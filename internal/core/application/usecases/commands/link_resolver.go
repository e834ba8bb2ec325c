package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// LinkResolver verifies a capability token and loads the order it grants
// access to, locked for update. A valid token for a deleted order is reported
// exactly like a forged one.
type LinkResolver struct {
	signer ports.LinkSigner
}

func NewLinkResolver(signer ports.LinkSigner) LinkResolver {
	return LinkResolver{signer: signer}
}

func (r LinkResolver) Resolve(ctx context.Context, repo ports.OrderRepository,
	action link.Action, token string,
) (*order.Order, error) {
	id, err := r.signer.Resolve(action, token)
	if err != nil {
		return nil, errs.ErrInvalidLink
	}

	o, err := repo.GetForUpdate(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.ErrInvalidLink
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// linkOrigin attributes a link action to the order's owner.
func linkOrigin(o *order.Order) order.Origin {
	return order.Origin{Actor: o.Owner().Actor(), Source: order.SourceTelegram, At: time.Now().UTC()}
}
