package mq

import (
	"context"
	"time"
)

// Routing keys published on the events exchange.
const (
	KeyOrderPlaced        = "order.placed"
	KeyOrderStatusChanged = "order.status_changed"
	KeyOrderDeleted       = "order.deleted"
	KeyMessageCreated     = "message.created"
)

// EventPublisher is what the use cases publish through. *Publisher talks to
// RabbitMQ; NoopPublisher is used when no broker is configured.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

type OrderEvent struct {
	OrderID        string    `json:"orderId"`
	OrderNumber    string    `json:"orderNumber"`
	UserID         string    `json:"userId"`
	ItemID         string    `json:"itemId"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Total          float64   `json:"total"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type MessageEvent struct {
	MessageID  string    `json:"messageId"`
	OrderID    string    `json:"orderId"`
	SenderID   string    `json:"senderId"`
	SenderType string    `json:"senderType"`
	OccurredAt time.Time `json:"occurredAt"`
}

type NoopPublisher struct{}

func (NoopPublisher) PublishJSON(context.Context, string, any) error { return nil }

func (NoopPublisher) Close() error { return nil }
