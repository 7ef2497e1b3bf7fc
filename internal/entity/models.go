package entity

import (
	"time"
)

// TransactionType marks the direction of a manual stock movement.
type TransactionType string

const (
	TransactionIn  TransactionType = "IN"
	TransactionOut TransactionType = "OUT"
)

// Valid reports whether t is one of the known movement directions.
func (t TransactionType) Valid() bool {
	return t == TransactionIn || t == TransactionOut
}

// OrderStatus is the lifecycle state of an order. Orders are created as
// Pending; nothing in this service advances the status afterwards.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusApproved  OrderStatus = "Approved"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// DefaultMinQuantity is the reorder threshold applied when an admin adds a
// product without specifying one.
const DefaultMinQuantity = 10

// Product represents a product in the catalog. Quantity never goes negative;
// both order placement and OUT stock movements guard it.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	MinQuantity int       `json:"min_quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// Supplier represents a stock supplier.
type Supplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// User represents an account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CartLine is a cart entry joined with the current product name and price.
// Price here is the live catalog price; it becomes a snapshot only when the
// order is placed.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items,omitempty"`
}

// OrderItem is a line item within an order. Quantity and Price are snapshots
// taken at placement time, so later catalog changes never alter the order.
type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// StockTransaction is an entry in the manual stock movement ledger.
// ProductName and SupplierName are join-time conveniences for listings.
type StockTransaction struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	SupplierID   *int64          `json:"supplier_id,omitempty"`
	Quantity     int             `json:"quantity"`
	Type         TransactionType `json:"type"`
	Date         time.Time       `json:"date"`
	ProductName  string          `json:"product_name,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
}

// InventoryLog is an append-only audit companion to every StockTransaction.
// ChangeAmount is signed: positive for IN, negative for OUT.
type InventoryLog struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	ChangeAmount int       `json:"change_amount"`
	Action       string    `json:"action"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReportSummary aggregates catalog-wide stock figures for dashboards.
type ReportSummary struct {
	TotalProducts int       `json:"total_products"`
	TotalStock    int       `json:"total_stock"`
	StockValue    float64   `json:"stock_value"`
	LowStock      []Product `json:"low_stock"`
}
