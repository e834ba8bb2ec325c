// Package kafka consumes payment events published by the payment provider
// integration and applies them to orders.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const (
	PaymentEventsTopic = "payment-events"
	DefaultGroupID     = "storefront-payments"

	defaultAttempts = 3
	defaultBackoff  = 500 * time.Millisecond
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PaymentStatusSetter applies one payment status change.
type PaymentStatusSetter interface {
	Handle(ctx context.Context, cmd commands.SetPaymentStatusCommand) (*order.Order, error)
}

// PaymentEvent is the message value. Either OrderID or Reference identifies
// the order.
type PaymentEvent struct {
	OrderID   int64  `json:"order_id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type PaymentConsumer struct {
	logger   *slog.Logger
	reader   MessageReader
	handler  PaymentStatusSetter
	attempts int
	backoff  time.Duration
}

func NewPaymentReader(brokers []string, groupID string) *kafka.Reader {
	if groupID == "" {
		groupID = DefaultGroupID
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          PaymentEventsTopic,
		MinBytes:       1,
		MaxBytes:       1e6,
		CommitInterval: 0,
	})
}

func NewPaymentConsumer(logger *slog.Logger, reader MessageReader, handler PaymentStatusSetter) *PaymentConsumer {
	return &PaymentConsumer{
		logger:   logger.With("component", "payment-consumer"),
		reader:   reader,
		handler:  handler,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
}

// Run consumes until ctx is done. Every fetched message is committed once it
// has been handled or found unusable; a message that keeps failing for
// infrastructure reasons is committed after the last attempt and logged.
func (c *PaymentConsumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("closing reader failed", "error", err)
		}
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("commit failed", "offset", msg.Offset, "error", err)
		}
	}
}

func (c *PaymentConsumer) handle(ctx context.Context, msg kafka.Message) {
	var event PaymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("unmarshal failed", "offset", msg.Offset, "error", err)
		return
	}

	cmd, err := commands.NewSetPaymentStatusCommand(event.OrderID, event.Reference, event.Status)
	if err != nil {
		c.logger.Error("payment event rejected", "order_id", event.OrderID, "reference", event.Reference, "error", err)
		return
	}

	for attempt := 1; ; attempt++ {
		o, err := c.handler.Handle(ctx, cmd)
		if err == nil {
			c.logger.Info("payment status applied",
				"order_id", o.ID(), "payment_status", o.Payment().Status.String())
			return
		}
		if permanent(err) || attempt >= c.attempts {
			c.logger.Error("payment event dropped",
				"order_id", event.OrderID, "reference", event.Reference, "attempts", attempt, "error", err)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
}

// permanent errors will fail the same way on every retry.
func permanent(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrTransitionNotAllowed) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}
