package commands_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/coupon"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var roses = ports.Product{ID: 1, Name: "Roses", Category: "bouquets", Price: 1000}

type checkoutMocks struct {
	uow       *MockUoW
	factory   *MockCheckoutUoWFactory
	orders    *MockOrderRepository
	coupons   *MockCouponRepository
	addresses *MockSavedAddressRepository
	catalog   *MockProductCatalog
	notifier  *MockNotifier
}

func newCheckoutMocks() checkoutMocks {
	m := checkoutMocks{
		uow:       new(MockUoW),
		factory:   new(MockCheckoutUoWFactory),
		orders:    new(MockOrderRepository),
		coupons:   new(MockCouponRepository),
		addresses: new(MockSavedAddressRepository),
		catalog:   new(MockProductCatalog),
		notifier:  new(MockNotifier),
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("ProductCatalog").Return(m.catalog).Maybe()
	m.uow.On("CouponRepository").Return(m.coupons).Maybe()
	m.uow.On("SavedAddressRepository").Return(m.addresses).Maybe()
	m.uow.On("OrderRepository").Return(m.orders).Maybe()
	return m
}

func (m checkoutMocks) assert(t *testing.T) {
	t.Helper()
	m.uow.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.coupons.AssertExpectations(t)
	m.addresses.AssertExpectations(t)
	m.catalog.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func love10(t *testing.T) *coupon.Coupon {
	t.Helper()
	limit := 5
	c, err := coupon.RestoreCoupon(4, coupon.Terms{
		Code: "LOVE10", Type: coupon.DiscountPercent, Value: 10, IsActive: true, UsageLimit: &limit,
	}, 0)
	require.NoError(t, err)
	return c
}

func TestCreateOrderCommandHandler_Handle_WithCoupon(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(checkoutParams(t))
	require.NoError(t, err)

	m := newCheckoutMocks()
	var stored *order.Order
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.catalog.On("GetProduct", mock.Anything, int64(1)).Return(roses, nil).Once(),
		m.coupons.On("GetByCode", mock.Anything, "love10").Return(love10(t), nil).Once(),
		m.coupons.On("Redeem", mock.Anything, int64(4)).Return(true, nil).Once(),
		m.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*order.Order)
				events := stored.PendingEvents()
				require.Len(t, events, 1)
				assert.Equal(t, order.EventCreated, events[0].Kind)
				assert.Equal(t, order.SourceAPI, events[0].Source)
				assert.Equal(t, map[string]any{"subtotal": int64(2000), "discount": int64(200), "gift": false},
					events[0].Payload)
				insertAs(42)(args)
			}).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	m.notifier.On("Notify", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == ports.NotificationOrderCreated && n.Order.ID == 42
	})).Once()

	h := commands.NewCreateOrderCommandHandler(m.factory, services.NewOrderPricer(0), m.notifier)
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, stored, o)
	assert.Equal(t, order.StatusProcessing, o.Status())
	assert.Equal(t, order.DeliveryNone, o.DeliveryStatus())
	assert.Equal(t, kernel.Money(2000), o.Totals().Subtotal())
	assert.Equal(t, kernel.Money(200), o.Totals().Discount())
	assert.Equal(t, kernel.Money(1800), o.Totals().Total())
	require.NotNil(t, o.Coupon())
	assert.Equal(t, "LOVE10", o.Coupon().Code)
	assert.Equal(t, order.CouponSnapshot{Type: "percent", Value: 10}, o.Coupon().Snapshot)
	assert.Equal(t, order.PaymentPending, o.Payment().Status)
	m.assert(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	p := checkoutParams(t)
	p.Lines = append(p.Lines, commands.OrderLine{ProductID: 99, Qty: 1})
	cmd, err := commands.NewCreateOrderCommand(p)
	require.NoError(t, err)

	m := newCheckoutMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.catalog.On("GetProduct", mock.Anything, int64(1)).Return(roses, nil).Once(),
		m.catalog.On("GetProduct", mock.Anything, int64(99)).
			Return(ports.Product{}, errs.NewObjectNotFoundError("product", int64(99))).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(m.factory, services.NewOrderPricer(0), m.notifier)
	o, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, o)
	m.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	m.coupons.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	m.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	m.assert(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownCoupon(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(checkoutParams(t))
	require.NoError(t, err)

	m := newCheckoutMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.catalog.On("GetProduct", mock.Anything, int64(1)).Return(roses, nil).Once(),
		m.coupons.On("GetByCode", mock.Anything, "love10").
			Return(nil, errs.NewObjectNotFoundError("coupon", "love10")).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(m.factory, services.NewOrderPricer(0), m.notifier)
	_, err = h.Handle(ctx, cmd)

	var invalid *errs.CouponInvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "LOVE10", invalid.Code)
	assert.Equal(t, coupon.ReasonNotFound, invalid.Reason)
	m.assert(t)
}

func TestCreateOrderCommandHandler_Handle_CouponExhaustedAtRedemption(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(checkoutParams(t))
	require.NoError(t, err)

	m := newCheckoutMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.catalog.On("GetProduct", mock.Anything, int64(1)).Return(roses, nil).Once(),
		m.coupons.On("GetByCode", mock.Anything, "love10").Return(love10(t), nil).Once(),
		m.coupons.On("Redeem", mock.Anything, int64(4)).Return(false, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(m.factory, services.NewOrderPricer(0), m.notifier)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrCouponInvalid)
	m.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	m.assert(t)
}

func TestCreateOrderCommandHandler_Handle_StoresCheckoutAddress(t *testing.T) {
	ctx := t.Context()
	p := checkoutParams(t)
	p.CouponCode = ""
	p.UseSavedAddress = true
	cmd, err := commands.NewCreateOrderCommand(p)
	require.NoError(t, err)

	m := newCheckoutMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.catalog.On("GetProduct", mock.Anything, int64(1)).Return(roses, nil).Once(),
		m.addresses.On("LockOwner", mock.Anything, p.Owner).Return(nil).Once(),
		m.addresses.On("FindByText", mock.Anything, p.Owner, "Abay 10").
			Return(nil, errs.NewObjectNotFoundError("saved address", "Abay 10")).Once(),
		m.addresses.On("Add", mock.Anything, mock.AnythingOfType("*address.SavedAddress")).
			Run(func(args mock.Arguments) {
				a := args.Get(1).(*address.SavedAddress)
				assert.Equal(t, address.DefaultLabel, a.Details().Label)
				a.AssignID(9)
			}).Return(nil).Once(),
		m.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Run(insertAs(43)).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	m.notifier.On("Notify", ctx, mock.Anything).Once()

	h := commands.NewCreateOrderCommandHandler(m.factory, services.NewOrderPricer(500), m.notifier)
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, o.SavedAddressID())
	assert.Equal(t, int64(9), *o.SavedAddressID())
	assert.Nil(t, o.Coupon())
	assert.Equal(t, kernel.Money(2500), o.Totals().Total())
	m.assert(t)
}

func TestCreateOrderCommandHandler_Handle_UsesOwnedSavedAddress(t *testing.T) {
	ctx := t.Context()
	p := checkoutParams(t)
	p.CouponCode = ""
	p.Customer.Address = ""
	savedID := int64(3)
	p.SavedAddressID = &savedID
	cmd, err := commands.NewCreateOrderCommand(p)
	require.NoError(t, err)

	saved, err := address.RestoreSavedAddress(3, p.Owner, address.Details{Address: "Dostyk 5"}, nil, nil, true,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	m := newCheckoutMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.catalog.On("GetProduct", mock.Anything, int64(1)).Return(roses, nil).Once(),
		m.addresses.On("GetOwned", mock.Anything, int64(3), p.Owner).Return(saved, nil).Once(),
		m.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Run(insertAs(44)).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	m.notifier.On("Notify", ctx, mock.Anything).Once()

	h := commands.NewCreateOrderCommandHandler(m.factory, services.NewOrderPricer(0), m.notifier)
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Dostyk 5", o.Customer().Address)
	assert.Equal(t, "Dostyk 5", o.Delivery().Address)
	require.NotNil(t, o.SavedAddressID())
	assert.Equal(t, int64(3), *o.SavedAddressID())
	m.assert(t)
}

func TestCreateOrderCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(new(MockCheckoutUoWFactory), services.NewOrderPricer(0), nil)

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_CommitFailure(t *testing.T) {
	ctx := t.Context()
	p := checkoutParams(t)
	p.CouponCode = ""
	cmd, err := commands.NewCreateOrderCommand(p)
	require.NoError(t, err)
	commitErr := errors.New("connection reset")

	m := newCheckoutMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.catalog.On("GetProduct", mock.Anything, int64(1)).Return(roses, nil).Once(),
		m.orders.On("Add", mock.Anything, mock.Anything).Run(insertAs(45)).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(commitErr).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(m.factory, services.NewOrderPricer(0), m.notifier)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commitErr)
	m.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	m.assert(t)
}
