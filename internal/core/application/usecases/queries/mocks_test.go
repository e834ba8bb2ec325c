package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/domain/model/coupon"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentReference(ctx context.Context, ref string) (*order.Order, error) {
	args := m.Called(ctx, ref)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindStaleDelivered(ctx context.Context, before time.Time, limit int) ([]int64, error) {
	args := m.Called(ctx, before, limit)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(*coupon.Coupon)
	return c, args.Error(1)
}

func (m *MockCouponRepository) Redeem(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

type MockLinkSigner struct{ mock.Mock }

func (m *MockLinkSigner) Issue(action link.Action, orderID int64) (string, error) {
	args := m.Called(action, orderID)
	return args.String(0), args.Error(1)
}

func (m *MockLinkSigner) Resolve(action link.Action, token string) (int64, error) {
	args := m.Called(action, token)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

type MockLinkBuilder struct{ mock.Mock }

func (m *MockLinkBuilder) URL(action link.Action, orderID int64) (string, error) {
	args := m.Called(action, orderID)
	return args.String(0), args.Error(1)
}

var placedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func guestOf(t *testing.T, email string) kernel.Identity {
	t.Helper()
	id, err := kernel.NewGuestIdentity(email)
	require.NoError(t, err)
	return id
}

func userOf(t *testing.T, userID int64, email string) kernel.Identity {
	t.Helper()
	id, err := kernel.NewUserIdentity(userID, email)
	require.NoError(t, err)
	return id
}

// newOrder builds an unsaved order with two roses at 1000.
func newOrder(t *testing.T, owner kernel.Identity) *order.Order {
	t.Helper()
	item, err := order.NewItem(1, "Roses", "bouquets", "", 1000, 2)
	require.NoError(t, err)
	totals, err := order.NewTotals(2000, 0, 0)
	require.NoError(t, err)

	o, err := order.NewOrder(order.Draft{
		Owner:    owner,
		Customer: order.Customer{Name: "Anna", Email: owner.Email(), Phone: "+77010000000", Address: "Abay 10"},
		Items:    []order.Item{item},
		Totals:   totals,
		Payment:  order.Payment{Method: order.PaymentDemo},
	}, placedAt)
	require.NoError(t, err)
	return o
}

func storedOrder(t *testing.T, id int64, owner kernel.Identity) *order.Order {
	t.Helper()
	o := newOrder(t, owner)
	require.NoError(t, o.AssignID(id))
	return o
}
