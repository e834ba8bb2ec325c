package commands

import (
	"context"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

type (
	orderLoader   func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error)
	orderMutation func(o *order.Order) (changed bool, err error)
)

func byID(id int64) orderLoader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.GetForUpdate(ctx, id)
	}
}

func byLink(resolver LinkResolver, action link.Action, token string) orderLoader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return resolver.Resolve(ctx, repo, action, token)
	}
}

// mutateOrder loads and locks one order, applies mutate and, when it reports a
// change, persists the order with its buffered records and commits. Events of
// the notify kinds are handed to the notifier after the commit. When nothing
// changed the transaction is rolled back and nothing is written or sent.
func mutateOrder(ctx context.Context, uowFactory OrderUoWFactory, notifier ports.Notifier,
	load orderLoader, mutate orderMutation, notifyKinds ...order.EventKind,
) (*order.Order, bool, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := load(ctx, repo)
	if err != nil {
		return nil, false, err
	}

	changed, err := mutate(o)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return o, false, nil
	}

	events := pendingNotices(o, notifyKinds...)
	if err = repo.Update(ctx, o); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	notify(ctx, notifier, o, events)
	return o, true, nil
}
