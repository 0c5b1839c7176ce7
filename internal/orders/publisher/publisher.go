package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
	"github.com/segmentio/kafka-go"
)

// OrderPublisher emits an event for every order appended to the log.
type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	Close() error
}

type OrderCreatedEvent struct {
	OrderID     string            `json:"order_id"`
	CartID      string            `json:"cart_id"`
	Customer    string            `json:"customer_name"`
	Items       []domain.CartItem `json:"items"`
	TotalAmount float64           `json:"total_amount"`
	Currency    string            `json:"currency"`
	CreatedAt   time.Time         `json:"created_at"`
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-created",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	event := OrderCreatedEvent{
		OrderID:     order.ID,
		CartID:      order.CartID,
		Customer:    order.CustomerName,
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		CreatedAt:   order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID), // order_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order-created")},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
