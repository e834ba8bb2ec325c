package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// QuickOrderName is stored when the quick form was sent without a name.
const QuickOrderName = "Quick order"

// QuickOrderCommandHandler stores a quick order in status created with a
// single item, no coupon and no delivery fee.
type QuickOrderCommandHandler struct {
	uowFactory        CheckoutUoWFactory
	notifier          ports.Notifier
	placeholderDomain string
}

// NewQuickOrderCommandHandler takes the domain used for placeholder emails
// (quick+<uuid>@domain) when the form has no email.
func NewQuickOrderCommandHandler(uowFactory CheckoutUoWFactory, notifier ports.Notifier,
	placeholderDomain string,
) QuickOrderCommandHandler {
	return QuickOrderCommandHandler{
		uowFactory:        uowFactory,
		notifier:          notifier,
		placeholderDomain: placeholderDomain,
	}
}

func (h QuickOrderCommandHandler) Handle(ctx context.Context, cmd QuickOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	email := cmd.Email()
	if email == "" {
		email = "quick+" + kernel.NewUUID().String() + "@" + h.placeholderDomain
	}
	owner, err := h.owner(cmd, email)
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

	product, err := uow.ProductCatalog().GetProduct(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}
	item, err := order.NewItem(product.ID, product.Name, product.Category, product.ImageURL, product.Price, 1)
	if err != nil {
		return nil, err
	}
	totals, err := order.NewTotals(product.Price, 0, 0)
	if err != nil {
		return nil, err
	}

	name := cmd.Name()
	if name == "" {
		name = QuickOrderName
	}
	now := time.Now().UTC()
	o, err := order.NewOrder(order.Draft{
		Owner: owner,
		Customer: order.Customer{
			Name:    name,
			Email:   email,
			Phone:   cmd.Phone(),
			Address: order.QuickOrderAddress,
		},
		Items:  []order.Item{item},
		Totals: totals,
		Status: order.StatusCreated,
		QuickOrderPayload: map[string]any{
			"name":       cmd.Name(),
			"phone":      cmd.Phone(),
			"product_id": product.ID,
		},
	}, now)
	if err != nil {
		return nil, err
	}
	o.RecordEvent(order.EventQuickOrder, map[string]any{"product": product.Name},
		order.Origin{Actor: owner.Actor(), Source: order.SourceQuickForm, At: now})
	events := pendingNotices(o, order.EventQuickOrder)

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notify(ctx, h.notifier, o, events)
	return o, nil
}

func (h QuickOrderCommandHandler) owner(cmd QuickOrderCommand, email string) (kernel.Identity, error) {
	if u := cmd.User(); u != nil {
		return *u, nil
	}
	return kernel.NewGuestIdentity(email)
}
