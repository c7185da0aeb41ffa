package broker

import (
	"context"
	"fmt"

	"pos-service/internal/models"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishTransactionCompleted publishes a TransactionCompleted event keyed
// by transaction id.
func (ep *EventPublisher) PublishTransactionCompleted(ctx context.Context, event *models.TransactionCompletedEvent) error {
	key := fmt.Sprintf("transaction-%s", event.TransactionID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishProductStockLow publishes a ProductStockLow event keyed by product
// id, so consumers see per-product events in order.
func (ep *EventPublisher) PublishProductStockLow(ctx context.Context, event *models.ProductStockLowEvent) error {
	key := fmt.Sprintf("product-%s", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// Close closes the underlying producer.
func (ep *EventPublisher) Close() error {
	return ep.producer.Close()
}
