package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const OrderChangedTopic = "order-changed"

// MessageWriter is the part of *kafka.Writer the channel needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderChanged is the JSON envelope published for every notification.
type OrderChanged struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	OrderID        int64     `json:"order_id"`
	Status         string    `json:"status"`
	DeliveryStatus string    `json:"delivery_status"`
	PaymentStatus  string    `json:"payment_status"`
	Total          int64     `json:"total"`
	From           string    `json:"from,omitempty"`
	To             string    `json:"to,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type KafkaChannel struct {
	writer MessageWriter
}

var _ Channel = &KafkaChannel{}

func NewKafkaChannel(writer MessageWriter) *KafkaChannel {
	return &KafkaChannel{writer: writer}
}

// NewOrderChangedWriter builds the writer for the order-changed topic.
// Messages are keyed by order id so that one order stays on one partition.
func NewOrderChangedWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  OrderChangedTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func (k *KafkaChannel) Name() string { return "kafka" }

func (k *KafkaChannel) Send(ctx context.Context, n ports.Notification) error {
	o := n.Order
	envelope := OrderChanged{
		ID:             kernel.NewUUID().String(),
		Kind:           string(n.Kind),
		OrderID:        o.ID,
		Status:         o.Status.String(),
		DeliveryStatus: o.DeliveryStatus.String(),
		PaymentStatus:  o.Payment.Status.String(),
		Total:          o.Totals.Total().Int64(),
		From:           n.From,
		To:             n.To,
		OccurredAt:     n.At.UTC(),
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return errs.NewNotificationFailedError(k.Name(), err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(o.ID, 10)),
		Value: value,
		Time:  n.At,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(envelope.Kind)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return errs.NewNotificationFailedError(k.Name(), err)
	}
	return nil
}
