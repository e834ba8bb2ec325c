package http_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/capability"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/coupon"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const staffKey = "staff-secret"

// memStore is an in-memory stand-in for the database. Orders are kept as
// snapshots so that an uncommitted change never leaks.
type memStore struct {
	mu       sync.Mutex
	orders   map[int64]order.State
	events   map[int64][]order.Event
	products map[int64]ports.Product
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		orders:   map[int64]order.State{},
		events:   map[int64][]order.Event{},
		products: map[int64]ports.Product{
			1: {ID: 1, Name: "Red roses", Category: "bouquets", Price: 5000},
			2: {ID: 2, Name: "Tulips", Category: "bouquets", Price: 2500},
		},
	}
}

func (s *memStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	if err := o.AssignID(s.nextID); err != nil {
		return err
	}
	s.save(o)
	return nil
}

func (s *memStore) Update(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	s.save(o)
	return nil
}

func (s *memStore) save(o *order.Order) {
	s.events[o.ID()] = append(s.events[o.ID()], o.PendingEvents()...)
	o.ClearPending()
	s.orders[o.ID()] = o.State()
}

func (s *memStore) Get(_ context.Context, id int64) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(st)
}

func (s *memStore) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return s.Get(ctx, id)
}

func (s *memStore) GetByPaymentReference(ctx context.Context, ref string) (*order.Order, error) {
	s.mu.Lock()
	var id int64
	for _, st := range s.orders {
		if st.Payment.Reference == ref {
			id = st.ID
		}
	}
	s.mu.Unlock()
	if id == 0 {
		return nil, errs.NewObjectNotFoundError("order", ref)
	}
	return s.Get(ctx, id)
}

func (s *memStore) FindStaleDelivered(context.Context, time.Time, int) ([]int64, error) {
	return nil, nil
}

func (s *memStore) GetProduct(_ context.Context, id int64) (ports.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return ports.Product{}, errs.NewObjectNotFoundError("product", id)
	}
	return p, nil
}

func (s *memStore) order(t *testing.T, id int64) order.State {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.orders[id]
	require.True(t, ok, "order %d is stored", id)
	return st
}

func (s *memStore) eventKinds(id int64) []order.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]order.EventKind, 0, len(s.events[id]))
	for _, e := range s.events[id] {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type noCoupons struct{}

func (noCoupons) GetByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	return nil, errs.NewObjectNotFoundError("coupon", code)
}

func (noCoupons) Redeem(context.Context, int64) (bool, error) { return false, nil }
func (noCoupons) Add(context.Context, *coupon.Coupon) error   { return nil }

type noAddresses struct{}

func (noAddresses) Add(_ context.Context, a *address.SavedAddress) error {
	a.AssignID(1)
	return nil
}

func (noAddresses) GetOwned(_ context.Context, id int64, _ kernel.Identity) (*address.SavedAddress, error) {
	return nil, errs.NewObjectNotFoundError("saved address", id)
}

func (noAddresses) FindByText(_ context.Context, _ kernel.Identity, text string) (*address.SavedAddress, error) {
	return nil, errs.NewObjectNotFoundError("saved address", text)
}

func (noAddresses) LockOwner(context.Context, kernel.Identity) error     { return nil }
func (noAddresses) ClearDefault(context.Context, kernel.Identity) error  { return nil }
func (noAddresses) Delete(context.Context, int64, kernel.Identity) error { return nil }

type memUoW struct{ store *memStore }

func (u memUoW) Begin(context.Context) error    { return nil }
func (u memUoW) Commit(context.Context) error   { return nil }
func (u memUoW) Rollback(context.Context) error { return nil }

func (u memUoW) OrderRepository() ports.OrderRepository               { return u.store }
func (u memUoW) CouponRepository() ports.CouponRepository             { return noCoupons{} }
func (u memUoW) SavedAddressRepository() ports.SavedAddressRepository { return noAddresses{} }
func (u memUoW) ProductCatalog() ports.ProductCatalog                 { return u.store }

type orderUoWFactory struct{ store *memStore }

func (f orderUoWFactory) Create() commands.OrderUoW { return memUoW(f) }

type checkoutUoWFactory struct{ store *memStore }

func (f checkoutUoWFactory) Create() commands.CheckoutUoW { return memUoW(f) }

type memPhotos struct {
	mu    sync.Mutex
	saved map[string]string
}

func (p *memPhotos) Save(_ context.Context, name string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved[name] = string(data)
	return "delivery_photos/" + name, nil
}

func (p *memPhotos) Delete(_ context.Context, ref string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.saved, strings.TrimPrefix(ref, "delivery_photos/"))
	return nil
}

func (p *memPhotos) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.saved))
	for n := range p.saved {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type recordingNotifier struct {
	mu    sync.Mutex
	kinds []ports.NotificationKind
}

func (n *recordingNotifier) Notify(_ context.Context, note ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, note.Kind)
}

type testApp struct {
	echo     *echo.Echo
	store    *memStore
	signer   *capability.Signer
	photos   *memPhotos
	notifier *recordingNotifier
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	keys, err := capability.NewKeys([]byte("0123456789abcdef-test-secret"))
	require.NoError(t, err)
	signer := capability.NewSigner(keys, nil)
	builder, err := capability.NewBuilder(signer, "https://shop.example")
	require.NoError(t, err)

	store := newMemStore()
	photos := &memPhotos{saved: map[string]string{}}
	notifier := &recordingNotifier{}
	orderUoW := orderUoWFactory{store: store}

	h := httpadapter.Handlers{
		CreateOrder:          commands.NewCreateOrderCommandHandler(checkoutUoWFactory{store: store}, services.NewOrderPricer(0), notifier),
		QuickOrder:           commands.NewQuickOrderCommandHandler(checkoutUoWFactory{store: store}, notifier, "quick.example"),
		ChangeStatus:         commands.NewChangeStatusCommandHandler(orderUoW, notifier),
		ChangeDeliveryStatus: commands.NewChangeDeliveryStatusCommandHandler(orderUoW, notifier),
		BulkChangeStatus:     commands.NewBulkChangeStatusCommandHandler(orderUoW, notifier),
		RequestDelivery:      commands.NewRequestDeliveryCommandHandler(orderUoW, notifier),
		SetPaymentStatus:     commands.NewSetPaymentStatusCommandHandler(orderUoW),
		ConfirmReceipt:       commands.NewConfirmReceiptCommandHandler(orderUoW, signer, notifier),
		CancelOrder:          commands.NewCancelOrderCommandHandler(orderUoW, signer, notifier),
		RateOrder:            commands.NewRateOrderCommandHandler(orderUoW, signer, notifier),
		RepeatOrder:          commands.NewRepeatOrderCommandHandler(orderUoW, signer, notifier),
		RequestCallback:      commands.NewRequestCallbackCommandHandler(orderUoW, signer),
		RequestAddressChange: commands.NewRequestAddressChangeCommandHandler(orderUoW, signer),
		UploadDeliveryPhoto:  commands.NewUploadDeliveryPhotoCommandHandler(orderUoW, signer, photos, notifier),
		GetOrder:             queries.NewGetOrderQueryHandler(store),
		GetOrderLinks:        queries.NewGetOrderLinksQueryHandler(store, builder),
		GetLinkedOrder:       queries.NewGetLinkedOrderQueryHandler(signer, store),
		QuoteCoupon:          queries.NewQuoteCouponQueryHandler(noCoupons{}),
		GetDeliverySlots:     queries.NewGetDeliverySlotsQueryHandler(services.NewSlotPlanner(time.UTC)),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpadapter.NewServer(h, logger, staffKey, "")

	return &testApp{
		echo:     server.NewEcho(""),
		store:    store,
		signer:   signer,
		photos:   photos,
		notifier: notifier,
	}
}

