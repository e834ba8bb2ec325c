package commands_test

import (
	"context"
	"io"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/coupon"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
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
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockSavedAddressRepository struct{ mock.Mock }

func (m *MockSavedAddressRepository) Add(ctx context.Context, a *address.SavedAddress) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockSavedAddressRepository) GetOwned(ctx context.Context, id int64,
	owner kernel.Identity,
) (*address.SavedAddress, error) {
	args := m.Called(ctx, id, owner)
	a, _ := args.Get(0).(*address.SavedAddress)
	return a, args.Error(1)
}

func (m *MockSavedAddressRepository) FindByText(ctx context.Context, owner kernel.Identity,
	text string,
) (*address.SavedAddress, error) {
	args := m.Called(ctx, owner, text)
	a, _ := args.Get(0).(*address.SavedAddress)
	return a, args.Error(1)
}

func (m *MockSavedAddressRepository) LockOwner(ctx context.Context, owner kernel.Identity) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockSavedAddressRepository) ClearDefault(ctx context.Context, owner kernel.Identity) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockSavedAddressRepository) Delete(ctx context.Context, id int64, owner kernel.Identity) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) GetProduct(ctx context.Context, id int64) (ports.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(ports.Product)
	return p, args.Error(1)
}

// MockUoW satisfies every segregated unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CouponRepository() ports.CouponRepository {
	args := m.Called()
	return args.Get(0).(ports.CouponRepository)
}

func (m *MockUoW) SavedAddressRepository() ports.SavedAddressRepository {
	args := m.Called()
	return args.Get(0).(ports.SavedAddressRepository)
}

func (m *MockUoW) ProductCatalog() ports.ProductCatalog {
	args := m.Called()
	return args.Get(0).(ports.ProductCatalog)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockAddressUoWFactory struct{ mock.Mock }

func (m *MockAddressUoWFactory) Create() commands.AddressUoW {
	args := m.Called()
	return args.Get(0).(commands.AddressUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) {
	m.Called(ctx, n)
}

type MockLinkSigner struct{ mock.Mock }

func (m *MockLinkSigner) Issue(action link.Action, orderID int64) (string, error) {
	args := m.Called(action, orderID)
	return args.String(0), args.Error(1)
}

func (m *MockLinkSigner) Resolve(action link.Action, token string) (int64, error) {
	args := m.Called(action, token)
	return args.Get(0).(int64), args.Error(1)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	args := m.Called(ctx, name, content)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoStorage) Delete(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

// persist mimics the repository contract: pending records are written and cleared.
func persist(args mock.Arguments) {
	args.Get(1).(*order.Order).ClearPending()
}

// insertAs mimics Add: the order gets the database id and its records are cleared.
func insertAs(id int64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		o := args.Get(1).(*order.Order)
		_ = o.AssignID(id)
		o.ClearPending()
	}
}

func guest(t *testing.T) kernel.Identity {
	t.Helper()
	id, err := kernel.NewGuestIdentity("aru@example.com")
	require.NoError(t, err)
	return id
}

// storedOrder builds an order as the repository would return it.
func storedOrder(t *testing.T, id int64, status order.Status, delivery order.DeliveryStatus) *order.Order {
	t.Helper()
	roses, err := order.NewItem(1, "Roses", "bouquets", "", 1000, 2)
	require.NoError(t, err)
	totals, err := order.NewTotals(2000, 0, 500)
	require.NoError(t, err)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	o, err := order.NewOrder(order.Draft{
		Owner:    guest(t),
		Customer: order.Customer{Name: "Aru", Phone: "+77010000000", Address: "Abay 10"},
		Items:    []order.Item{roses},
		Totals:   totals,
		Gift:     order.Gift{IsGift: true, RecipientName: "Mom"},
		Payment:  order.Payment{Method: order.PaymentStripeTest, Reference: "pi_123"},
		Status:   order.StatusProcessing,
	}, created)
	require.NoError(t, err)

	state := o.State()
	state.ID = id
	state.Status = status
	state.DeliveryStatus = delivery
	restored, err := order.RestoreOrder(state)
	require.NoError(t, err)
	return restored
}

func orderUoW(uow *MockUoW) *MockOrderUoWFactory {
	f := new(MockOrderUoWFactory)
	f.On("Create").Return(uow)
	return f
}
