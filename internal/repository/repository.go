package repository

import (
	"context"
	"errors"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
)

// ErrNotFound is returned when a row addressed by identity does not exist.
var ErrNotFound = errors.New("record not found")

// Tx is the set of reads and writes available inside one atomic unit of
// work. Either every write performed through a Tx becomes visible, or none
// does.
type Tx interface {
	// CartLines returns the user's cart entries joined with the current
	// product name and price.
	CartLines(ctx context.Context, userID int64) ([]entity.CartLine, error)
	ClearCart(ctx context.Context, userID int64) error

	CreateOrder(ctx context.Context, order *entity.Order) (int64, error)
	CreateOrderItem(ctx context.Context, item *entity.OrderItem) error

	// ProductForUpdate reads a product row and holds an exclusive row lock
	// on it until the unit of work ends, serializing concurrent stock
	// writes on the same product. Returns ErrNotFound for unknown IDs.
	ProductForUpdate(ctx context.Context, productID int64) (entity.Product, error)
	SetProductQuantity(ctx context.Context, productID int64, quantity int) error
	AddProductQuantity(ctx context.Context, productID int64, delta int) error

	CreateStockTransaction(ctx context.Context, txn *entity.StockTransaction) (int64, error)
	AppendInventoryLog(ctx context.Context, log *entity.InventoryLog) error
}

// Store runs units of work. RunInTx begins a transaction, invokes fn, and
// commits only when fn returns nil; any error (or panic unwinding) rolls the
// whole unit back. The transaction handle is released on every exit path.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

// ProductRepository handles catalog persistence outside the order/stock
// units of work.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) (int64, error)
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id int64) (entity.Product, error)
	Update(ctx context.Context, p entity.Product) error
	Delete(ctx context.Context, id int64) error
}

// CartRepository handles single-row cart mutations. These do not span
// entities, so they run outside the Store unit of work.
type CartRepository interface {
	Lines(ctx context.Context, userID int64) ([]entity.CartLine, error)
	// Add upserts: an existing entry is incremented by one, otherwise a new
	// entry with quantity one is inserted.
	Add(ctx context.Context, userID, productID int64) error
	// UpdateQuantity adds delta to the entry's quantity and then deletes any
	// of the user's entries left at quantity <= 0.
	UpdateQuantity(ctx context.Context, userID, productID int64, delta int) error
	Remove(ctx context.Context, userID, productID int64) error
}

// OrderRepository reads back placed orders.
type OrderRepository interface {
	FindByUser(ctx context.Context, userID int64) ([]entity.Order, error)
}

// StockRepository reads the stock movement ledger.
type StockRepository interface {
	ListTransactions(ctx context.Context) ([]entity.StockTransaction, error)
}

// SupplierRepository handles supplier persistence.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) (int64, error)
	FindAll(ctx context.Context) ([]entity.Supplier, error)
}

// UserRepository handles account persistence.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (entity.User, error)
	FindByID(ctx context.Context, id int64) (entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	Delete(ctx context.Context, id int64) error
	Promote(ctx context.Context, id int64) error
}

// ReportRepository computes catalog-wide aggregates.
type ReportRepository interface {
	Summary(ctx context.Context) (entity.ReportSummary, error)
}
