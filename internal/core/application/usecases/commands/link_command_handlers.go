package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// ConfirmReceiptResult carries the order and a fresh token for the rating page.
type ConfirmReceiptResult struct {
	Order     *order.Order
	RateToken string
}

// ConfirmReceiptCommandHandler completes the order and marks it delivered.
// Repeating the confirmation, or confirming a canceled order, changes nothing
// and still succeeds.
type ConfirmReceiptCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   LinkResolver
	signer     ports.LinkSigner
	notifier   ports.Notifier
}

func NewConfirmReceiptCommandHandler(uowFactory OrderUoWFactory, signer ports.LinkSigner,
	notifier ports.Notifier,
) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{
		uowFactory: uowFactory,
		resolver:   NewLinkResolver(signer),
		signer:     signer,
		notifier:   notifier,
	}
}

func (h ConfirmReceiptCommandHandler) Handle(ctx context.Context, cmd ConfirmReceiptCommand) (ConfirmReceiptResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmReceiptResult{}, err
	}

	o, _, err := mutateOrder(ctx, h.uowFactory, h.notifier, byLink(h.resolver, link.ActionConfirm, cmd.Token()),
		func(o *order.Order) (bool, error) {
			return o.ConfirmReceipt(linkOrigin(o)), nil
		},
		order.EventStatusChanged, order.EventDeliveryStatusChanged,
	)
	if err != nil {
		return ConfirmReceiptResult{}, err
	}

	rateToken, err := h.signer.Issue(link.ActionRate, o.ID())
	if err != nil {
		return ConfirmReceiptResult{}, err
	}
	return ConfirmReceiptResult{Order: o, RateToken: rateToken}, nil
}

// CancelOrderCommandHandler cancels a non-terminal order once the customer
// confirmed. An unconfirmed call only loads the order.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   LinkResolver
	notifier   ports.Notifier
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, signer ports.LinkSigner,
	notifier ports.Notifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, resolver: NewLinkResolver(signer), notifier: notifier}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, _, err := mutateOrder(ctx, h.uowFactory, h.notifier, byLink(h.resolver, link.ActionCancel, cmd.Token()),
		func(o *order.Order) (bool, error) {
			if !cmd.Confirmed() {
				return false, nil
			}
			return o.Cancel(linkOrigin(o)), nil
		},
		order.EventStatusChanged, order.EventDeliveryStatusChanged,
	)
	return o, err
}

// RateOrderCommandHandler stores the latest rating. Every submission is
// recorded and announced, even when it repeats the previous one.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   LinkResolver
	notifier   ports.Notifier
}

func NewRateOrderCommandHandler(uowFactory OrderUoWFactory, signer ports.LinkSigner,
	notifier ports.Notifier,
) RateOrderCommandHandler {
	return RateOrderCommandHandler{uowFactory: uowFactory, resolver: NewLinkResolver(signer), notifier: notifier}
}

func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, _, err := mutateOrder(ctx, h.uowFactory, h.notifier, byLink(h.resolver, link.ActionRate, cmd.Token()),
		func(o *order.Order) (bool, error) {
			o.Rate(cmd.Score(), cmd.Comment(), linkOrigin(o))
			return true, nil
		},
		order.EventRated,
	)
	return o, err
}

// RepeatOrderCommandHandler creates a new order from a previous one. Each
// call creates another order; prices are copied, not re-fetched.
type RepeatOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   LinkResolver
	notifier   ports.Notifier
}

func NewRepeatOrderCommandHandler(uowFactory OrderUoWFactory, signer ports.LinkSigner,
	notifier ports.Notifier,
) RepeatOrderCommandHandler {
	return RepeatOrderCommandHandler{uowFactory: uowFactory, resolver: NewLinkResolver(signer), notifier: notifier}
}

func (h RepeatOrderCommandHandler) Handle(ctx context.Context, cmd RepeatOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	source, err := h.resolver.Resolve(ctx, repo, link.ActionRepeat, cmd.Token())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o, err := order.NewOrder(source.RepeatDraft(), now)
	if err != nil {
		return nil, err
	}
	by := linkOrigin(source)
	by.At = now
	o.RecordEvent(order.EventRepeatOrder, map[string]any{"source": source.ID()}, by)
	events := pendingNotices(o, order.EventRepeatOrder)

	if err = repo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notify(ctx, h.notifier, o, events)
	return o, nil
}

// RequestCallbackCommandHandler records that the customer asked to be called.
type RequestCallbackCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   LinkResolver
}

func NewRequestCallbackCommandHandler(uowFactory OrderUoWFactory, signer ports.LinkSigner) RequestCallbackCommandHandler {
	return RequestCallbackCommandHandler{uowFactory: uowFactory, resolver: NewLinkResolver(signer)}
}

func (h RequestCallbackCommandHandler) Handle(ctx context.Context, cmd RequestCallbackCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, _, err := mutateOrder(ctx, h.uowFactory, nil, byLink(h.resolver, link.ActionCall, cmd.Token()),
		func(o *order.Order) (bool, error) {
			o.RequestCallback(linkOrigin(o))
			return true, nil
		},
	)
	return o, err
}

// RequestAddressChangeCommandHandler stores the customer's new address for
// staff to review. The delivery address itself is not changed.
type RequestAddressChangeCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   LinkResolver
}

func NewRequestAddressChangeCommandHandler(uowFactory OrderUoWFactory,
	signer ports.LinkSigner,
) RequestAddressChangeCommandHandler {
	return RequestAddressChangeCommandHandler{uowFactory: uowFactory, resolver: NewLinkResolver(signer)}
}

func (h RequestAddressChangeCommandHandler) Handle(ctx context.Context,
	cmd RequestAddressChangeCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, _, err := mutateOrder(ctx, h.uowFactory, nil, byLink(h.resolver, link.ActionAddress, cmd.Token()),
		func(o *order.Order) (bool, error) {
			return true, o.RequestAddressChange(cmd.Address(), cmd.Comment(), linkOrigin(o))
		},
	)
	return o, err
}
