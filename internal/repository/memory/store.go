// Package memory provides an in-memory implementation of the repository
// ports. It backs tests and local development without a database while
// preserving the transactional contract: RunInTx applies either all of a
// unit of work's writes or none of them, and serializes units of work so the
// locking-read guarantee of ProductForUpdate holds.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

type state struct {
	products  map[int64]*entity.Product
	cart      map[int64]map[int64]int // userID -> productID -> quantity
	orders    map[int64]*entity.Order
	items     []entity.OrderItem
	txns      []entity.StockTransaction
	logs      []entity.InventoryLog
	suppliers map[int64]*entity.Supplier
	users     map[int64]*entity.User

	nextProductID  int64
	nextOrderID    int64
	nextItemID     int64
	nextTxnID      int64
	nextLogID      int64
	nextSupplierID int64
	nextUserID     int64
}

func newState() *state {
	return &state{
		products:  make(map[int64]*entity.Product),
		cart:      make(map[int64]map[int64]int),
		orders:    make(map[int64]*entity.Order),
		suppliers: make(map[int64]*entity.Supplier),
		users:     make(map[int64]*entity.User),
	}
}

func (st *state) clone() *state {
	c := &state{
		products:       make(map[int64]*entity.Product, len(st.products)),
		cart:           make(map[int64]map[int64]int, len(st.cart)),
		orders:         make(map[int64]*entity.Order, len(st.orders)),
		items:          append([]entity.OrderItem(nil), st.items...),
		txns:           append([]entity.StockTransaction(nil), st.txns...),
		logs:           append([]entity.InventoryLog(nil), st.logs...),
		suppliers:      make(map[int64]*entity.Supplier, len(st.suppliers)),
		users:          make(map[int64]*entity.User, len(st.users)),
		nextProductID:  st.nextProductID,
		nextOrderID:    st.nextOrderID,
		nextItemID:     st.nextItemID,
		nextTxnID:      st.nextTxnID,
		nextLogID:      st.nextLogID,
		nextSupplierID: st.nextSupplierID,
		nextUserID:     st.nextUserID,
	}
	for id, p := range st.products {
		cp := *p
		c.products[id] = &cp
	}
	for uid, entries := range st.cart {
		m := make(map[int64]int, len(entries))
		for pid, qty := range entries {
			m[pid] = qty
		}
		c.cart[uid] = m
	}
	for id, o := range st.orders {
		co := *o
		c.orders[id] = &co
	}
	for id, s := range st.suppliers {
		cs := *s
		c.suppliers[id] = &cs
	}
	for id, u := range st.users {
		cu := *u
		c.users[id] = &cu
	}
	return c
}

// Store is the in-memory root. It satisfies repository.Store plus every
// read-side repository interface.
type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

var (
	_ repository.Store             = (*Store)(nil)
	_ repository.ProductRepository = (*Store)(nil)
	_ repository.CartRepository    = (*Store)(nil)
	_ repository.OrderRepository   = (*Store)(nil)
	_ repository.StockRepository   = (*Store)(nil)
	_ repository.ReportRepository  = (*Store)(nil)
)

// RunInTx executes fn against a snapshot of the store. The snapshot replaces
// the live state only when fn returns nil, so a failing unit of work leaves
// no partial writes behind. The store mutex is held for the duration, which
// serializes concurrent units of work the way row locks do in Postgres.
func (s *Store) RunInTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.st.clone()
	if err := fn(&memTx{st: snap}); err != nil {
		return err
	}
	s.st = snap
	return nil
}

type memTx struct {
	st *state
}

func (t *memTx) CartLines(ctx context.Context, userID int64) ([]entity.CartLine, error) {
	return cartLines(t.st, userID), nil
}

func (t *memTx) ClearCart(ctx context.Context, userID int64) error {
	delete(t.st.cart, userID)
	return nil
}

func (t *memTx) CreateOrder(ctx context.Context, order *entity.Order) (int64, error) {
	t.st.nextOrderID++
	order.ID = t.st.nextOrderID
	co := *order
	t.st.orders[order.ID] = &co
	return order.ID, nil
}

func (t *memTx) CreateOrderItem(ctx context.Context, item *entity.OrderItem) error {
	t.st.nextItemID++
	item.ID = t.st.nextItemID
	t.st.items = append(t.st.items, *item)
	return nil
}

func (t *memTx) ProductForUpdate(ctx context.Context, productID int64) (entity.Product, error) {
	p, ok := t.st.products[productID]
	if !ok {
		return entity.Product{}, repository.ErrNotFound
	}
	return *p, nil
}

func (t *memTx) SetProductQuantity(ctx context.Context, productID int64, quantity int) error {
	if p, ok := t.st.products[productID]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (t *memTx) AddProductQuantity(ctx context.Context, productID int64, delta int) error {
	if p, ok := t.st.products[productID]; ok {
		p.Quantity += delta
	}
	return nil
}

func (t *memTx) CreateStockTransaction(ctx context.Context, txn *entity.StockTransaction) (int64, error) {
	t.st.nextTxnID++
	txn.ID = t.st.nextTxnID
	t.st.txns = append(t.st.txns, *txn)
	return txn.ID, nil
}

func (t *memTx) AppendInventoryLog(ctx context.Context, log *entity.InventoryLog) error {
	t.st.nextLogID++
	log.ID = t.st.nextLogID
	t.st.logs = append(t.st.logs, *log)
	return nil
}

func cartLines(st *state, userID int64) []entity.CartLine {
	entries := st.cart[userID]
	ids := make([]int64, 0, len(entries))
	for pid := range entries {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var lines []entity.CartLine
	for _, pid := range ids {
		p, ok := st.products[pid]
		if !ok {
			continue
		}
		lines = append(lines, entity.CartLine{
			ProductID: pid,
			Name:      p.Name,
			Quantity:  entries[pid],
			Price:     p.Price,
		})
	}
	return lines
}

// --- repository.ProductRepository ---

func (s *Store) Create(ctx context.Context, p *entity.Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.MinQuantity <= 0 {
		p.MinQuantity = entity.DefaultMinQuantity
	}
	s.st.nextProductID++
	p.ID = s.st.nextProductID
	p.CreatedAt = time.Now()
	cp := *p
	s.st.products[p.ID] = &cp
	return p.ID, nil
}

func (s *Store) FindAll(ctx context.Context) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]entity.Product, 0, len(s.st.products))
	for _, p := range s.st.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID > products[j].ID })
	return products, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.st.products[id]
	if !ok {
		return entity.Product{}, repository.ErrNotFound
	}
	return *p, nil
}

func (s *Store) Update(ctx context.Context, p entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.st.products[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if p.MinQuantity <= 0 {
		p.MinQuantity = entity.DefaultMinQuantity
	}
	p.CreatedAt = existing.CreatedAt
	cp := p
	s.st.products[p.ID] = &cp
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.st.products, id)
	return nil
}

// --- repository.CartRepository ---

func (s *Store) Lines(ctx context.Context, userID int64) ([]entity.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cartLines(s.st, userID), nil
}

func (s *Store) Add(ctx context.Context, userID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.cart[userID] == nil {
		s.st.cart[userID] = make(map[int64]int)
	}
	s.st.cart[userID][productID]++
	return nil
}

func (s *Store) UpdateQuantity(ctx context.Context, userID, productID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.st.cart[userID]
	if entries == nil {
		return nil
	}
	if _, ok := entries[productID]; ok {
		entries[productID] += delta
	}
	for pid, qty := range entries {
		if qty <= 0 {
			delete(entries, pid)
		}
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, userID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries := s.st.cart[userID]; entries != nil {
		delete(entries, productID)
	}
	return nil
}

// --- repository.OrderRepository ---

func (s *Store) FindByUser(ctx context.Context, userID int64) ([]entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []entity.Order
	for _, o := range s.st.orders {
		if o.UserID != userID {
			continue
		}
		order := *o
		for _, item := range s.st.items {
			if item.OrderID == order.ID {
				withName := item
				if p, ok := s.st.products[item.ProductID]; ok {
					withName.Name = p.Name
				}
				order.Items = append(order.Items, withName)
			}
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

// --- repository.StockRepository ---

func (s *Store) ListTransactions(ctx context.Context) ([]entity.StockTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := make([]entity.StockTransaction, len(s.st.txns))
	copy(txns, s.st.txns)
	for i := range txns {
		if p, ok := s.st.products[txns[i].ProductID]; ok {
			txns[i].ProductName = p.Name
		}
		if txns[i].SupplierID != nil {
			if sup, ok := s.st.suppliers[*txns[i].SupplierID]; ok {
				txns[i].SupplierName = sup.Name
			}
		}
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].ID > txns[j].ID })
	return txns, nil
}

// InventoryLogs returns a copy of the audit trail. Only tests need it, but
// it mirrors what operators would query straight off the table.
func (s *Store) InventoryLogs() []entity.InventoryLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]entity.InventoryLog, len(s.st.logs))
	copy(logs, s.st.logs)
	return logs
}

// --- repository.SupplierRepository ---

// Suppliers returns a SupplierRepository view over the store. The view is
// needed because Create/FindAll would otherwise collide with the product
// repository methods on Store itself.
func (s *Store) Suppliers() repository.SupplierRepository {
	return supplierStore{s: s}
}

type supplierStore struct{ s *Store }

func (r supplierStore) Create(ctx context.Context, sup *entity.Supplier) (int64, error) {
	return r.s.CreateSupplier(ctx, sup)
}

func (r supplierStore) FindAll(ctx context.Context) ([]entity.Supplier, error) {
	return r.s.FindAllSuppliers(ctx)
}

func (s *Store) CreateSupplier(ctx context.Context, sup *entity.Supplier) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.nextSupplierID++
	sup.ID = s.st.nextSupplierID
	cp := *sup
	s.st.suppliers[sup.ID] = &cp
	return sup.ID, nil
}

func (s *Store) FindAllSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	suppliers := make([]entity.Supplier, 0, len(s.st.suppliers))
	for _, sup := range s.st.suppliers {
		suppliers = append(suppliers, *sup)
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].ID < suppliers[j].ID })
	return suppliers, nil
}

// --- repository.UserRepository ---

// Users returns a UserRepository view over the store.
func (s *Store) Users() repository.UserRepository {
	return userStore{s: s}
}

type userStore struct{ s *Store }

func (r userStore) Create(ctx context.Context, u *entity.User) (int64, error) {
	return r.s.CreateUser(ctx, u)
}

func (r userStore) FindByEmail(ctx context.Context, email string) (entity.User, error) {
	return r.s.FindUserByEmail(ctx, email)
}

func (r userStore) FindByID(ctx context.Context, id int64) (entity.User, error) {
	return r.s.FindUserByID(ctx, id)
}

func (r userStore) FindAll(ctx context.Context) ([]entity.User, error) {
	return r.s.FindAllUsers(ctx)
}

func (r userStore) Delete(ctx context.Context, id int64) error {
	return r.s.DeleteUser(ctx, id)
}

func (r userStore) Promote(ctx context.Context, id int64) error {
	return r.s.PromoteUser(ctx, id)
}

func (s *Store) CreateUser(ctx context.Context, u *entity.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Role == "" {
		u.Role = "user"
	}
	s.st.nextUserID++
	u.ID = s.st.nextUserID
	u.CreatedAt = time.Now()
	cp := *u
	s.st.users[u.ID] = &cp
	return u.ID, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.st.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return entity.User{}, repository.ErrNotFound
}

func (s *Store) FindUserByID(ctx context.Context, id int64) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.st.users[id]
	if !ok {
		return entity.User{}, repository.ErrNotFound
	}
	return *u, nil
}

func (s *Store) FindAllUsers(ctx context.Context) ([]entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]entity.User, 0, len(s.st.users))
	for _, u := range s.st.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.st.users, id)
	return nil
}

func (s *Store) PromoteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.st.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = "admin"
	return nil
}

// --- repository.ReportRepository ---

func (s *Store) Summary(ctx context.Context) (entity.ReportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary entity.ReportSummary
	for _, p := range s.st.products {
		summary.TotalProducts++
		summary.TotalStock += p.Quantity
		summary.StockValue += float64(p.Quantity) * p.Price
		if p.Quantity <= p.MinQuantity {
			summary.LowStock = append(summary.LowStock, *p)
		}
	}
	sort.Slice(summary.LowStock, func(i, j int) bool {
		return summary.LowStock[i].Quantity < summary.LowStock[j].Quantity
	})
	return summary, nil
}
