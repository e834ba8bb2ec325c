package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeReader hands out queued messages and then blocks until ctx is done.
type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []int64
	closed    bool
	fetchErr  error
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if r.fetchErr != nil {
		err := r.fetchErr
		r.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(r.messages) > 0 {
		msg := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

type mockSetter struct {
	mock.Mock
}

func (m *mockSetter) Handle(ctx context.Context, cmd commands.SetPaymentStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func paidOrder(t *testing.T) *order.Order {
	t.Helper()
	owner, err := kernel.NewGuestIdentity("anna@example.com")
	require.NoError(t, err)
	item, err := order.NewItem(1, "Red roses", "bouquets", "", 1000, 1)
	require.NoError(t, err)
	totals, err := order.NewTotals(1000, 0, 0)
	require.NoError(t, err)
	o, err := order.NewOrder(order.Draft{
		Owner:    owner,
		Customer: order.Customer{Name: "Anna", Phone: "+77010000000", Address: "Abay 10"},
		Items:    []order.Item{item},
		Totals:   totals,
		Payment:  order.Payment{Method: order.PaymentDemo},
		Status:   order.StatusProcessing,
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.AssignID(7))
	return o
}

func newTestConsumer(reader MessageReader, setter PaymentStatusSetter) *PaymentConsumer {
	c := NewPaymentConsumer(slog.New(slog.NewTextHandler(io.Discard, nil)), reader, setter)
	c.backoff = time.Millisecond
	return c
}

// runUntilCommitted runs the consumer until n offsets are committed.
func runUntilCommitted(t *testing.T, c *PaymentConsumer, reader *fakeReader, n int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return len(reader.commits()) >= n }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.True(t, reader.closed)
}

func TestPaymentConsumer_AppliesEvents(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{
		{Offset: 1, Value: []byte(`{"order_id":7,"status":"paid"}`)},
		{Offset: 2, Value: []byte(`{"reference":"pi_123","status":"failed"}`)},
	}}
	setter := &mockSetter{}
	setter.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetPaymentStatusCommand) bool {
		return cmd.OrderID() == 7 && cmd.Status() == order.PaymentPaid
	})).Return(paidOrder(t), nil).Once()
	setter.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetPaymentStatusCommand) bool {
		return cmd.Reference() == "pi_123" && cmd.Status() == order.PaymentFailed
	})).Return(paidOrder(t), nil).Once()

	runUntilCommitted(t, newTestConsumer(reader, setter), reader, 2)

	assert.Equal(t, []int64{1, 2}, reader.commits())
	setter.AssertExpectations(t)
}

func TestPaymentConsumer_UnusableMessagesAreCommitted(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{
		{Offset: 1, Value: []byte(`not json`)},
		{Offset: 2, Value: []byte(`{"status":"paid"}`)},
		{Offset: 3, Value: []byte(`{"order_id":7,"status":"refunded-twice"}`)},
	}}
	setter := &mockSetter{}

	runUntilCommitted(t, newTestConsumer(reader, setter), reader, 3)

	assert.Equal(t, []int64{1, 2, 3}, reader.commits())
	setter.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPaymentConsumer_Retries(t *testing.T) {
	t.Run("transient error is retried", func(t *testing.T) {
		reader := &fakeReader{messages: []kafka.Message{{Offset: 5, Value: []byte(`{"order_id":7,"status":"paid"}`)}}}
		setter := &mockSetter{}
		setter.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()
		setter.On("Handle", mock.Anything, mock.Anything).Return(paidOrder(t), nil).Once()

		runUntilCommitted(t, newTestConsumer(reader, setter), reader, 1)

		setter.AssertNumberOfCalls(t, "Handle", 2)
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		reader := &fakeReader{messages: []kafka.Message{{Offset: 5, Value: []byte(`{"order_id":7,"status":"paid"}`)}}}
		setter := &mockSetter{}
		setter.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

		runUntilCommitted(t, newTestConsumer(reader, setter), reader, 1)

		setter.AssertNumberOfCalls(t, "Handle", defaultAttempts)
	})

	t.Run("unknown order is not retried", func(t *testing.T) {
		reader := &fakeReader{messages: []kafka.Message{{Offset: 5, Value: []byte(`{"order_id":404,"status":"paid"}`)}}}
		setter := &mockSetter{}
		setter.On("Handle", mock.Anything, mock.Anything).Return(nil, errs.NewObjectNotFoundError("order", 404))

		runUntilCommitted(t, newTestConsumer(reader, setter), reader, 1)

		setter.AssertNumberOfCalls(t, "Handle", 1)
	})
}

func TestPaymentConsumer_FetchError(t *testing.T) {
	reader := &fakeReader{fetchErr: errors.New("broker gone")}

	err := newTestConsumer(reader, &mockSetter{}).Run(context.Background())

	require.EqualError(t, err, "broker gone")
	assert.True(t, reader.closed)
}
