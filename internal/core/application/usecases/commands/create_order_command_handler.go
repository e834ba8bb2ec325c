package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/coupon"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// CreateOrderCommandHandler runs checkout as one unit of work: product
// lookups, coupon re-validation and redemption, saved-address handling and
// the insert of the order, its items and its created event. Any failure rolls
// the whole checkout back, including the coupon counter.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	pricer     services.OrderPricer
	notifier   ports.Notifier
}

func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory, pricer services.OrderPricer,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		notifier:   notifier,
	}
}

// Handle returns the stored order. The order starts in processing with no
// delivery and a pending payment.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	items, err := resolveItems(ctx, uow.ProductCatalog(), cmd.Lines())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	coupons := uow.CouponRepository()
	c, err := findCoupon(ctx, coupons, cmd.CouponCode())
	if err != nil {
		return nil, err
	}

	quote, err := h.pricer.Price(items, c, now)
	if err != nil {
		return nil, err
	}
	if quote.Coupon != nil {
		redeemed, err := coupons.Redeem(ctx, *quote.Coupon.ID)
		if err != nil {
			return nil, err
		}
		if !redeemed {
			return nil, errs.NewCouponInvalidError(quote.Coupon.Code, coupon.ReasonExhausted)
		}
	}

	customer := cmd.Customer()
	deliveryAddress := cmd.DeliveryAddress()
	if deliveryAddress == "" {
		deliveryAddress = customer.Address
	}
	savedAddressID, savedText, err := h.savedAddress(ctx, uow.SavedAddressRepository(), cmd, deliveryAddress, now)
	if err != nil {
		return nil, err
	}
	if savedText != "" {
		deliveryAddress = savedText
		if customer.Address == "" {
			customer.Address = savedText
		}
	}

	o, err := order.NewOrder(order.Draft{
		Owner:           cmd.Owner(),
		Customer:        customer,
		SavedAddressID:  savedAddressID,
		DeliveryAddress: deliveryAddress,
		Items:           items,
		Totals:          quote.Totals,
		Coupon:          quote.Coupon,
		Gift:            cmd.Gift(),
		Payment:         order.Payment{Method: cmd.PaymentMethod()},
		Status:          order.StatusProcessing,
	}, now)
	if err != nil {
		return nil, err
	}
	o.RecordEvent(order.EventCreated, map[string]any{
		"subtotal": quote.Totals.Subtotal().Int64(),
		"discount": quote.Totals.Discount().Int64(),
		"gift":     cmd.Gift().IsGift,
	}, order.Origin{Actor: cmd.Owner().Actor(), Source: order.SourceAPI, At: now})
	events := pendingNotices(o, order.EventCreated)

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notify(ctx, h.notifier, o, events)
	return o, nil
}

// savedAddress returns the id to link and, when an existing saved address is
// chosen, its text. A saved address id the owner does not own is ignored.
func (h CreateOrderCommandHandler) savedAddress(ctx context.Context, repo ports.SavedAddressRepository,
	cmd CreateOrderCommand, text string, now time.Time,
) (*int64, string, error) {
	owner := cmd.Owner()

	if cmd.UseSavedAddress() {
		if err := repo.LockOwner(ctx, owner); err != nil {
			return nil, "", err
		}
		a, err := repo.FindByText(ctx, owner, text)
		if errors.Is(err, errs.ErrObjectNotFound) {
			a, err = address.NewSavedAddress(owner, address.Details{Address: text}, nil, false, now)
			if err != nil {
				return nil, "", err
			}
			err = repo.Add(ctx, a)
		}
		if err != nil {
			return nil, "", err
		}
		id := a.ID()
		return &id, "", nil
	}

	if cmd.SavedAddressID() == nil {
		return nil, "", nil
	}
	a, err := repo.GetOwned(ctx, *cmd.SavedAddressID(), owner)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	id := a.ID()
	return &id, a.Address(), nil
}

func resolveItems(ctx context.Context, catalog ports.ProductCatalog, lines []OrderLine) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		p, err := catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(p.ID, p.Name, p.Category, p.ImageURL, p.Price, line.Qty)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// findCoupon returns nil for an empty code and CouponInvalidError for an unknown one.
func findCoupon(ctx context.Context, coupons ports.CouponRepository, code string) (*coupon.Coupon, error) {
	if code == "" {
		return nil, nil //nolint:nilnil // no coupon requested
	}
	c, err := coupons.GetByCode(ctx, code)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewCouponInvalidError(coupon.NormalizeCode(code), coupon.ReasonNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
