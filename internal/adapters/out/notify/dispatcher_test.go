package notify_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/adapters/out/notify"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestDispatcher_InlineWithoutWorkers(t *testing.T) {
	logger, logs := bufferLogger()
	broken := &recordingChannel{name: "broken", err: errors.New("connection refused")}
	healthy := &recordingChannel{name: "healthy"}
	d := notify.NewDispatcher(logger, notify.Config{}, nil, broken, healthy)

	d.Notify(t.Context(), created(t))

	assert.Equal(t, 1, broken.count())
	assert.Equal(t, 1, healthy.count(), "one failing channel does not stop the others")
	assert.Contains(t, logs.String(), "notification not delivered")
	assert.Contains(t, logs.String(), "notification failed: broken")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestDispatcher_SurvivesCanceledCallerContext(t *testing.T) {
	logger, _ := bufferLogger()
	ch := &recordingChannel{name: "ch"}
	d := notify.NewDispatcher(logger, notify.Config{}, nil, ch)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	d.Notify(ctx, created(t))

	assert.Equal(t, 1, ch.count())
}

func TestDispatcher_Dedup(t *testing.T) {
	logger, _ := bufferLogger()
	ch := &recordingChannel{name: "ch"}
	d := notify.NewDispatcher(logger, notify.Config{}, &memoryDeduper{}, ch)

	changed := ports.Notification{
		Kind:  ports.NotificationStatusChanged,
		Order: orderState(t),
		From:  order.StatusCreated.String(),
		To:    order.StatusProcessing.String(),
		At:    notifiedAt,
	}
	d.Notify(t.Context(), changed)
	d.Notify(t.Context(), changed)
	assert.Equal(t, 1, ch.count())

	changed.From, changed.To = order.StatusProcessing.String(), order.StatusDelivering.String()
	d.Notify(t.Context(), changed)
	assert.Equal(t, 2, ch.count())
}

func TestDispatcher_DedupErrorLetsNotificationThrough(t *testing.T) {
	logger, logs := bufferLogger()
	ch := &recordingChannel{name: "ch"}
	d := notify.NewDispatcher(logger, notify.Config{}, &memoryDeduper{err: errors.New("redis down")}, ch)

	d.Notify(t.Context(), created(t))

	assert.Equal(t, 1, ch.count())
	assert.Contains(t, logs.String(), "notification dedup unavailable")
}

func TestDispatcher_Workers(t *testing.T) {
	logger, _ := bufferLogger()
	ch := &recordingChannel{name: "ch"}
	d := notify.NewDispatcher(logger, notify.Config{Workers: 2}, nil, ch)
	ctx, cancel := context.WithCancel(t.Context())
	d.Start(ctx)

	for range 5 {
		d.Notify(t.Context(), created(t))
	}

	require.Eventually(t, func() bool { return ch.count() == 5 }, time.Second, 5*time.Millisecond)
	cancel()
	d.Wait()
}

func TestDispatcher_WorkersOwnTheDedupCheck(t *testing.T) {
	logger, _ := bufferLogger()
	ch := &recordingChannel{name: "ch"}
	dedup := &memoryDeduper{delay: 500 * time.Millisecond}
	d := notify.NewDispatcher(logger, notify.Config{Workers: 2}, dedup, ch)
	ctx, cancel := context.WithCancel(t.Context())
	d.Start(ctx)

	start := time.Now()
	d.Notify(t.Context(), created(t))
	d.Notify(t.Context(), created(t))

	assert.Less(t, time.Since(start), 200*time.Millisecond, "Notify waited on the deduper")
	require.Eventually(t, func() bool { return dedup.calls() == 2 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return ch.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return ch.count() > 1 }, 100*time.Millisecond, 5*time.Millisecond)
	cancel()
	d.Wait()
}

func TestDispatcher_FullQueueSendsInline(t *testing.T) {
	logger, logs := bufferLogger()
	ch := &recordingChannel{name: "ch", gate: make(chan struct{}), entered: make(chan struct{})}
	d := notify.NewDispatcher(logger, notify.Config{Workers: 1, QueueSize: 1}, nil, ch)
	ctx, cancel := context.WithCancel(t.Context())
	d.Start(ctx)

	d.Notify(t.Context(), created(t))
	<-ch.entered // the only worker is busy
	d.Notify(t.Context(), created(t))
	d.Notify(t.Context(), created(t))

	assert.Equal(t, 2, ch.count(), "the third notification is delivered inline")
	assert.Contains(t, logs.String(), "notification queue is full")

	close(ch.gate)
	require.Eventually(t, func() bool { return ch.count() == 3 }, time.Second, 5*time.Millisecond)
	cancel()
	d.Wait()
}

func TestDispatcher_NoChannels(t *testing.T) {
	logger, logs := bufferLogger()
	d := notify.NewDispatcher(logger, notify.Config{}, &memoryDeduper{err: errors.New("unused")})

	d.Notify(t.Context(), created(t))

	assert.Empty(t, logs.String())
}

func TestDedupKey(t *testing.T) {
	n := ports.Notification{Kind: ports.NotificationDeliveryStatusChanged, Order: order.State{ID: 7}, From: "pending", To: "scheduled"}
	assert.Equal(t, "notify:7:delivery_status_changed:pending:scheduled", notify.DedupKey(n))
}
