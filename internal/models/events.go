package models

import "time"

// Event types
const (
	EventTypeTransactionCompleted = "TRANSACTION_COMPLETED"
	EventTypeProductStockLow      = "PRODUCT_STOCK_LOW"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionCompletedEvent published after a sale is recorded
type TransactionCompletedEvent struct {
	BaseEvent
	TransactionID     string            `json:"transaction_id"`
	TransactionNumber string            `json:"transaction_number"`
	Total             float64           `json:"total"`
	PaymentMethod     string            `json:"payment_method"`
	Items             []TransactionItem `json:"items"`
}

// ProductStockLowEvent published when a stock decrement drops a product
// below the configured threshold
type ProductStockLowEvent struct {
	BaseEvent
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
}
