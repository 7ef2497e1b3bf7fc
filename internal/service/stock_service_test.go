package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository/memory"
)

func TestAddTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("IN increments stock and writes ledger plus audit log", func(t *testing.T) {
		store := memory.NewStore()
		pub := &capturePublisher{}
		svc := NewStockService(store, store, pub, zap.NewNop())

		p := seedProduct(t, store, "Widget", 10, 5, 1)

		id, err := svc.AddTransaction(ctx, AddTransactionInput{
			ProductID: p.ID,
			Quantity:  10,
			Type:      entity.TransactionIn,
		})
		require.NoError(t, err)
		require.NotZero(t, id)

		got, err := store.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, got.Quantity)

		txns, err := store.ListTransactions(ctx)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, id, txns[0].ID)
		assert.Equal(t, entity.TransactionIn, txns[0].Type)
		assert.Equal(t, 10, txns[0].Quantity)
		assert.Equal(t, "Widget", txns[0].ProductName)
		assert.Nil(t, txns[0].SupplierID)

		logs := store.InventoryLogs()
		require.Len(t, logs, 1)
		assert.Equal(t, p.ID, logs[0].ProductID)
		assert.Equal(t, 10, logs[0].ChangeAmount)
		assert.Equal(t, "Stock In", logs[0].Action)

		adjusted := pub.byTopic("stock.adjusted")
		require.Len(t, adjusted, 1)
		event, ok := adjusted[0].Event.(entity.StockAdjusted)
		require.True(t, ok)
		assert.Equal(t, 15, event.NewQuantity)
	})

	t.Run("IN records the supplier", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewStockService(store, store, nil, zap.NewNop())

		p := seedProduct(t, store, "Widget", 10, 0, 1)
		sup := entity.Supplier{Name: "Acme", Contact: "acme@example.com"}
		supID, err := store.CreateSupplier(ctx, &sup)
		require.NoError(t, err)

		_, err = svc.AddTransaction(ctx, AddTransactionInput{
			ProductID:  p.ID,
			SupplierID: &supID,
			Quantity:   4,
			Type:       entity.TransactionIn,
		})
		require.NoError(t, err)

		txns, err := svc.ListTransactions(ctx)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		require.NotNil(t, txns[0].SupplierID)
		assert.Equal(t, supID, *txns[0].SupplierID)
		assert.Equal(t, "Acme", txns[0].SupplierName)
	})

	t.Run("OUT may drain stock exactly to zero", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewStockService(store, store, nil, zap.NewNop())

		p := seedProduct(t, store, "Widget", 10, 5, 1)

		_, err := svc.AddTransaction(ctx, AddTransactionInput{
			ProductID: p.ID,
			Quantity:  5,
			Type:      entity.TransactionOut,
		})
		require.NoError(t, err)

		got, err := store.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Quantity)

		logs := store.InventoryLogs()
		require.Len(t, logs, 1)
		assert.Equal(t, -5, logs[0].ChangeAmount)
		assert.Equal(t, "Stock Out", logs[0].Action)
	})

	t.Run("OUT past zero persists nothing", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewStockService(store, store, nil, zap.NewNop())

		p := seedProduct(t, store, "Widget", 10, 5, 1)

		_, err := svc.AddTransaction(ctx, AddTransactionInput{
			ProductID: p.ID,
			Quantity:  6,
			Type:      entity.TransactionOut,
		})
		require.ErrorIs(t, err, ErrInsufficientStock)

		got, err := store.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Quantity)

		txns, err := store.ListTransactions(ctx)
		require.NoError(t, err)
		assert.Empty(t, txns)
		assert.Empty(t, store.InventoryLogs())
	})

	t.Run("OUT below the threshold publishes a low stock event", func(t *testing.T) {
		store := memory.NewStore()
		pub := &capturePublisher{}
		svc := NewStockService(store, store, pub, zap.NewNop())

		p := seedProduct(t, store, "Dwindling", 10, 12, 4)

		_, err := svc.AddTransaction(ctx, AddTransactionInput{
			ProductID: p.ID,
			Quantity:  9,
			Type:      entity.TransactionOut,
		})
		require.NoError(t, err)

		low := pub.byTopic("stock.low")
		require.Len(t, low, 1)
		event, ok := low[0].Event.(entity.LowStockDetected)
		require.True(t, ok)
		assert.Equal(t, 3, event.Quantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewStockService(store, store, nil, zap.NewNop())

		_, err := svc.AddTransaction(ctx, AddTransactionInput{
			ProductID: 42,
			Quantity:  1,
			Type:      entity.TransactionIn,
		})
		require.ErrorIs(t, err, ErrProductNotFound)

		txns, err := store.ListTransactions(ctx)
		require.NoError(t, err)
		assert.Empty(t, txns)
	})

	t.Run("validation", func(t *testing.T) {
		store := memory.NewStore()
		svc := NewStockService(store, store, nil, zap.NewNop())
		p := seedProduct(t, store, "Widget", 10, 5, 1)

		cases := []struct {
			name string
			in   AddTransactionInput
		}{
			{"missing product id", AddTransactionInput{Quantity: 1, Type: entity.TransactionIn}},
			{"zero quantity", AddTransactionInput{ProductID: p.ID, Quantity: 0, Type: entity.TransactionIn}},
			{"negative quantity", AddTransactionInput{ProductID: p.ID, Quantity: -2, Type: entity.TransactionOut}},
			{"unknown type", AddTransactionInput{ProductID: p.ID, Quantity: 1, Type: "SIDEWAYS"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.AddTransaction(ctx, tc.in)
				require.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})

	t.Run("masks infrastructure failures", func(t *testing.T) {
		svc := NewStockService(failingStore{err: errors.New("connection refused")}, memory.NewStore(), nil, zap.NewNop())

		_, err := svc.AddTransaction(ctx, AddTransactionInput{
			ProductID: 1,
			Quantity:  1,
			Type:      entity.TransactionIn,
		})
		require.ErrorIs(t, err, ErrTransactionFailed)
		assert.NotContains(t, err.Error(), "connection refused")
	})
}

func TestAddTransactionConcurrentDrain(t *testing.T) {
	// Two concurrent OUTs for the full remaining quantity. The row lock means
	// exactly one sees 5 available; the other must fail, never oversell.
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewStockService(store, store, nil, zap.NewNop())

	p := seedProduct(t, store, "Contested", 10, 5, 1)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddTransaction(ctx, AddTransactionInput{
				ProductID: p.ID,
				Quantity:  5,
				Type:      entity.TransactionOut,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)

	got, err := store.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}
