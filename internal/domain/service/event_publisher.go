package service

import (
	"context"
	"time"
)

// OrderEvent is published after a successful checkout for async processing
// (confirmation pipeline, fulfilment, analytics).
type OrderEvent struct {
	RequestID     string    `json:"request_id,omitempty"` // For distributed tracing
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	TotalQuantity int       `json:"total_quantity"`
	GrandTotal    float64   `json:"grand_total"`
	CreatedAt     time.Time `json:"created_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
