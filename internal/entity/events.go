package entity

import "time"

// --- Events ---
//
// Events are published to the message broker after the owning unit of work
// has committed; consumers must tolerate at-least-once delivery.

// OrderPlaced is emitted when a cart has been converted into an order.
type OrderPlaced struct {
	OrderID     int64       `json:"order_id"`
	UserID      int64       `json:"user_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	PlacedAt    time.Time   `json:"placed_at"`
}

func (e OrderPlaced) EventType() string { return "OrderPlaced" }

// StockAdjusted is emitted when a ledger transaction changes product stock.
type StockAdjusted struct {
	TransactionID int64           `json:"transaction_id"`
	ProductID     int64           `json:"product_id"`
	Type          TransactionType `json:"type"`
	Quantity      int             `json:"quantity"`
	NewQuantity   int             `json:"new_quantity"`
	AdjustedAt    time.Time       `json:"adjusted_at"`
}

func (e StockAdjusted) EventType() string { return "StockAdjusted" }

// LowStockDetected is emitted when a stock-reducing write leaves a product
// at or below its reorder threshold.
type LowStockDetected struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}

func (e LowStockDetected) EventType() string { return "LowStockDetected" }
