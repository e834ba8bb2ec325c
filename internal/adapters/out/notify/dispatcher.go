package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const (
	DefaultQueueSize   = 256
	DefaultSendTimeout = 10 * time.Second
)

// Channel is one outbound destination.
type Channel interface {
	Name() string
	Send(ctx context.Context, n ports.Notification) error
}

// Deduper claims a key for a while. Claim reports false when the key was
// already claimed.
type Deduper interface {
	Claim(ctx context.Context, key string) (bool, error)
}

type Config struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

var _ ports.Notifier = &Dispatcher{}

type Dispatcher struct {
	logger   *slog.Logger
	channels []Channel
	dedup    Deduper
	queue    chan ports.Notification
	workers  int
	timeout  time.Duration
	started  atomic.Bool
	wg       sync.WaitGroup
}

func NewDispatcher(logger *slog.Logger, cfg Config, dedup Deduper, channels ...Channel) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}
	if cfg.Workers < 0 {
		cfg.Workers = 0
	}
	return &Dispatcher{
		logger:   logger.With("component", "notify"),
		channels: channels,
		dedup:    dedup,
		queue:    make(chan ports.Notification, cfg.QueueSize),
		workers:  cfg.Workers,
		timeout:  cfg.SendTimeout,
	}
}

// Start launches the workers. They stop when ctx is done; Wait blocks until
// they have returned.
func (d *Dispatcher) Start(ctx context.Context) {
	if d.workers == 0 || !d.started.CompareAndSwap(false, true) {
		return
	}
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for {
				select {
				case <-ctx.Done():
					d.started.Store(false)
					d.drain()
					return
				case n := <-d.queue:
					d.deliver(context.Background(), n)
				}
			}
		}()
	}
	d.logger.Info("notification workers started", "workers", d.workers)
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) drain() {
	for {
		select {
		case n := <-d.queue:
			d.deliver(context.Background(), n)
		default:
			return
		}
	}
}

// Notify never blocks longer than the send timeout and never fails. With
// running workers it only enqueues; the dedup check and the sends happen on
// the worker.
func (d *Dispatcher) Notify(ctx context.Context, n ports.Notification) {
	if len(d.channels) == 0 {
		return
	}

	if d.started.Load() {
		select {
		case d.queue <- n:
			return
		default:
			d.logger.Warn("notification queue is full, sending inline", "order_id", n.Order.ID, "kind", n.Kind)
		}
	}
	d.deliver(context.WithoutCancel(ctx), n)
}

func (d *Dispatcher) deliver(ctx context.Context, n ports.Notification) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if d.duplicate(ctx, n) {
		d.logger.Debug("duplicate notification suppressed", "order_id", n.Order.ID, "kind", n.Kind)
		return
	}

	for _, ch := range d.channels {
		if err := ch.Send(ctx, n); err != nil {
			var failed *errs.NotificationFailedError
			if !errors.As(err, &failed) {
				err = errs.NewNotificationFailedError(ch.Name(), err)
			}
			d.logger.Warn("notification not delivered",
				"channel", ch.Name(),
				"order_id", n.Order.ID,
				"kind", n.Kind,
				"error", err,
			)
		}
	}
}

// duplicate reports true only when the deduper has seen the key. A deduper
// error lets the notification through.
func (d *Dispatcher) duplicate(ctx context.Context, n ports.Notification) bool {
	if d.dedup == nil {
		return false
	}
	claimed, err := d.dedup.Claim(ctx, DedupKey(n))
	if err != nil {
		d.logger.Warn("notification dedup unavailable", "order_id", n.Order.ID, "error", err)
		return false
	}
	return !claimed
}

// DedupKey identifies one transition of one order.
func DedupKey(n ports.Notification) string {
	return fmt.Sprintf("notify:%d:%s:%s:%s", n.Order.ID, n.Kind, n.From, n.To)
}
