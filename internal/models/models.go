package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCategory is assigned to products created without a category.
const DefaultCategory = "General"

// Product represents an item in the catalog. The ObjectID marshals to its
// hex form in JSON, so API clients only ever see a string id.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ProductCreate is the payload for creating a product.
type ProductCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	IsActive    *bool   `json:"is_active"`
}

// ProductUpdate is a partial update. Pointer fields distinguish "omitted"
// from "set to the zero value"; only non-nil fields are applied.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	IsActive    *bool    `json:"is_active"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u *ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Stock == nil && u.Category == nil && u.Image == nil && u.IsActive == nil
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Category   string
	ActiveOnly bool
	Limit      int64
}

// TransactionItem is a line item snapshot. Name, price and total are
// captured at sale time and never re-fetched.
type TransactionItem struct {
	ProductID   string  `bson:"product_id" json:"product_id"`
	ProductName string  `bson:"product_name" json:"product_name"`
	Price       float64 `bson:"price" json:"price"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	Total       float64 `bson:"total" json:"total"`
}

// Transaction represents a completed sale.
type Transaction struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionNumber string             `bson:"transaction_number" json:"transaction_number"`
	Items             []TransactionItem  `bson:"items" json:"items"`
	Subtotal          float64            `bson:"subtotal" json:"subtotal"`
	Tax               float64            `bson:"tax" json:"tax"`
	Discount          float64            `bson:"discount" json:"discount"`
	Total             float64            `bson:"total" json:"total"`
	PaymentMethod     string             `bson:"payment_method" json:"payment_method"`
	CustomerName      string             `bson:"customer_name,omitempty" json:"customer_name,omitempty"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}

// TransactionCreate is the payload for recording a sale. Monetary fields
// are trusted as supplied; the server does not recompute totals.
type TransactionCreate struct {
	Items          []TransactionItem `json:"items" binding:"required"`
	Subtotal       float64           `json:"subtotal"`
	Tax            float64           `json:"tax"`
	Discount       float64           `json:"discount"`
	Total          float64           `json:"total"`
	PaymentMethod  string            `json:"payment_method"`
	CustomerName   string            `json:"customer_name"`
	Notes          string            `json:"notes"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
}

// TransactionStatusCompleted is the only transaction state. Sales are
// recorded after the fact, so there is a single terminal status.
const TransactionStatusCompleted = "completed"

// DashboardStats is the aggregate snapshot served by /api/dashboard/stats.
type DashboardStats struct {
	TotalProducts     int64   `json:"total_products"`
	TotalTransactions int64   `json:"total_transactions"`
	TodayRevenue      float64 `json:"today_revenue"`
	TodayTransactions int64   `json:"today_transactions"`
	LowStockCount     int64   `json:"low_stock_count"`
}
