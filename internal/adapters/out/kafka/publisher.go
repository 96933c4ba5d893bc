// Package kafka publishes order domain events to a Kafka topic through a sarama
// SyncProducer. Messages are JSON, keyed by order id so that all events of one
// order land on the same partition in the order they were produced.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "ordering/kafka"

var _ ports.OrderEventPublisher = (*Publisher)(nil)

// EventMessage is the wire form of an order event.
type EventMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	OccurredAt time.Time `json:"occurredAt"`

	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	ItemID    string `json:"itemId,omitempty"`
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`

	Status    string `json:"status"`
	Total     string `json:"total"`
	ItemCount int    `json:"itemCount"`
}

// NewEventMessage converts a domain event to its wire form.
func NewEventMessage(e order.Event) EventMessage {
	msg := EventMessage{
		Type:       string(e.Type),
		OrderID:    e.OrderID.String(),
		CustomerID: e.CustomerID.String(),
		OccurredAt: e.OccurredAt.UTC(),
		Quantity:   e.Quantity,
		Status:     e.Status.String(),
		Total:      e.Total.String(),
		ItemCount:  e.ItemCount,
	}
	if e.Type == order.EventStatusChanged {
		msg.From = e.From.String()
		msg.To = e.To.String()
	}
	if e.Type == order.EventItemAdded || e.Type == order.EventItemRemoved {
		msg.ItemID = e.ItemID.String()
		msg.ProductID = e.ProductID.String()
	}
	return msg
}

// Publisher sends order events to one topic.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewProducerConfig returns the sarama settings used for order events: wait for all
// in-sync replicas, retry five times and report successes for SyncProducer.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	config.Version = sarama.V2_1_0_0
	return config
}

// NewSyncProducer connects a SyncProducer to brokers.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to start sarama producer: %w", err)
	}
	return producer, nil
}

// NewPublisher wraps producer. The publisher owns the producer and closes it in Close.
func NewPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// Publish sends events as one batch. The current trace context travels in the
// message headers.
func (p *Publisher) Publish(ctx context.Context, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	ctx, span := p.tracer.Start(ctx, "order_events publish", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination.name", p.topic),
		attribute.Int("messaging.batch.message_count", len(events)),
	)

	headers := traceHeaders(ctx)
	messages := make([]*sarama.ProducerMessage, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(NewEventMessage(e))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "encode failed")
			return fmt.Errorf("encode %s event: %w", e.Type, err)
		}
		msgHeaders := make([]sarama.RecordHeader, 0, len(headers)+1)
		msgHeaders = append(msgHeaders, headers...)
		msgHeaders = append(msgHeaders, sarama.RecordHeader{Key: []byte("event-type"), Value: []byte(e.Type)})

		messages = append(messages, &sarama.ProducerMessage{
			Topic:   p.topic,
			Key:     sarama.StringEncoder(e.OrderID.String()),
			Value:   sarama.ByteEncoder(payload),
			Headers: msgHeaders,
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return flattenProducerErrors(err)
	}

	p.logger.DebugContext(ctx, "order events published",
		slog.String("topic", p.topic),
		slog.Int("events", len(events)),
	)
	span.SetStatus(codes.Ok, "published")
	return nil
}

// Close shuts the producer down.
func (p *Publisher) Close() error {
	return p.producer.Close()
}

func traceHeaders(ctx context.Context) []sarama.RecordHeader {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := make([]sarama.RecordHeader, 0, len(carrier))
	for _, key := range carrier.Keys() {
		headers = append(headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(carrier.Get(key))})
	}
	return headers
}

func flattenProducerErrors(err error) error {
	var batch sarama.ProducerErrors
	if !errors.As(err, &batch) {
		return err
	}
	joined := make([]error, 0, len(batch))
	for _, pe := range batch {
		joined = append(joined, pe.Err)
	}
	return errors.Join(joined...)
}

// NoopPublisher drops events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, []order.Event) error { return nil }
