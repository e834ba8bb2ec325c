package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront/internal/adapters/out/notify"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestKafkaChannel_Envelope(t *testing.T) {
	w := &fakeWriter{}
	ch := notify.NewKafkaChannel(w)
	n := ports.Notification{
		Kind:  ports.NotificationStatusChanged,
		Order: orderState(t),
		From:  order.StatusCreated.String(),
		To:    order.StatusProcessing.String(),
		At:    notifiedAt,
	}

	require.NoError(t, ch.Send(t.Context(), n))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, "kind", msg.Headers[0].Key)
	assert.Equal(t, "status_changed", string(msg.Headers[0].Value))

	var env notify.OrderChanged
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	_, err := kernel.UUIDFromString(env.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), env.OrderID)
	assert.Equal(t, "status_changed", env.Kind)
	assert.Equal(t, "created", env.Status)
	assert.Equal(t, "none", env.DeliveryStatus)
	assert.Equal(t, "pending", env.PaymentStatus)
	assert.Equal(t, int64(12500), env.Total)
	assert.Equal(t, "created", env.From)
	assert.Equal(t, "processing", env.To)
	assert.True(t, notifiedAt.Equal(env.OccurredAt))
}

func TestKafkaChannel_EnvelopeIDsAreUnique(t *testing.T) {
	w := &fakeWriter{}
	ch := notify.NewKafkaChannel(w)

	require.NoError(t, ch.Send(t.Context(), created(t)))
	require.NoError(t, ch.Send(t.Context(), created(t)))

	var a, b notify.OrderChanged
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &a))
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &b))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestKafkaChannel_WriteError(t *testing.T) {
	ch := notify.NewKafkaChannel(&fakeWriter{err: errors.New("leader not available")})

	err := ch.Send(t.Context(), created(t))

	require.ErrorIs(t, err, errs.ErrNotificationFailed)
}

func TestNewOrderChangedWriter(t *testing.T) {
	w := notify.NewOrderChangedWriter([]string{"localhost:9092"})
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, notify.OrderChangedTopic, w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
}
