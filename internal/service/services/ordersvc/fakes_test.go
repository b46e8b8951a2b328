package ordersvc

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/shop/internal/service/errs"
	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/corray333/backend-labs/shop/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/shop/internal/service/models/outbox"
	"github.com/corray333/backend-labs/shop/internal/service/models/product"
	"github.com/shopspring/decimal"
)

var errStorage = errors.New("storage unavailable")

// memData is the state of the in-memory database.
type memData struct {
	orders      map[int64]order.Order
	items       map[int64]orderitem.OrderItem
	outbox      []outbox.OutboxMessage
	nextOrderID int64
	nextItemID  int64
}

func (d *memData) clone() *memData {
	c := &memData{
		orders:      make(map[int64]order.Order, len(d.orders)),
		items:       make(map[int64]orderitem.OrderItem, len(d.items)),
		outbox:      slices.Clone(d.outbox),
		nextOrderID: d.nextOrderID,
		nextItemID:  d.nextItemID,
	}
	for k, v := range d.orders {
		v.OrderItemIDs = slices.Clone(v.OrderItemIDs)
		c.orders[k] = v
	}
	for k, v := range d.items {
		c.items[k] = v
	}

	return c
}

// memDB emulates a transactional store: a unit of work works on a copy that
// replaces the committed state on Commit.
type memDB struct {
	mu   sync.Mutex
	data *memData

	// failItemInsertAt makes the n-th order item insert (1-based) fail.
	failItemInsertAt int
	itemInserts      int
	failOrderInsert  error
	failItemDelete   map[int64]error
	failCommit       error
	commits          int
	rollbacks        int
}

func newMemDB() *memDB {
	return &memDB{
		data: &memData{
			orders: map[int64]order.Order{},
			items:  map[int64]orderitem.OrderItem{},
		},
		failItemDelete: map[int64]error{},
	}
}

func (db *memDB) newUOW() unitOfWork {
	return &memUOW{db: db}
}

func (db *memDB) snapshot() *memData {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.data.clone()
}

// seedOrder stores an order and its items directly in the committed state.
func (db *memDB) seedOrder(total string, prices ...string) order.Order {
	db.mu.Lock()
	defer db.mu.Unlock()

	o := order.Order{
		Status:     order.StatusPending,
		TotalPrice: decimal.RequireFromString(total),
		UserID:     1,
		CreatedAt:  time.Now(),
	}
	for _, p := range prices {
		db.data.nextItemID++
		item := orderitem.OrderItem{ID: db.data.nextItemID, ProductID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString(p)}
		db.data.items[item.ID] = item
		o.OrderItemIDs = append(o.OrderItemIDs, item.ID)
	}
	db.data.nextOrderID++
	o.ID = db.data.nextOrderID
	db.data.orders[o.ID] = o

	return o
}

type memUOW struct {
	db *memDB
	tx *memData
}

func (u *memUOW) state() *memData {
	if u.tx != nil {
		return u.tx
	}
	return u.db.data
}

func (u *memUOW) Begin(context.Context) error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()

	u.tx = u.db.data.clone()

	return nil
}

func (u *memUOW) Commit(context.Context) error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()

	if u.tx == nil {
		return nil
	}
	if u.db.failCommit != nil {
		return u.db.failCommit
	}
	u.db.data = u.tx
	u.tx = nil
	u.db.commits++

	return nil
}

func (u *memUOW) Rollback(context.Context) error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()

	if u.tx != nil {
		u.tx = nil
		u.db.rollbacks++
	}

	return nil
}

func (u *memUOW) OrderRepository() iorderrepo.IOrderRepository {
	return &memOrderRepo{u: u}
}

func (u *memUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return &memOrderItemRepo{u: u}
}

func (u *memUOW) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return &memOutboxRepo{u: u}
}

type memOrderRepo struct{ u *memUOW }

func (r *memOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	if r.u.db.failOrderInsert != nil {
		return order.Order{}, r.u.db.failOrderInsert
	}
	s := r.u.state()
	s.nextOrderID++
	o.ID = s.nextOrderID
	o.OrderItems = nil
	s.orders[o.ID] = o

	return o, nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id int64) (order.Order, error) {
	o, ok := r.u.state().orders[id]
	if !ok {
		return order.Order{}, errs.NotFound("order", id)
	}

	return o, nil
}

func (r *memOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	result := []order.Order{}
	for _, o := range r.u.state().orders {
		if len(filter.UserIds) > 0 && !slices.Contains(filter.UserIds, o.UserID) {
			continue
		}
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id int64, status order.Status) (order.Order, error) {
	s := r.u.state()
	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, errs.NotFound("order", id)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	s.orders[id] = o

	return o, nil
}

func (r *memOrderRepo) Delete(_ context.Context, id int64) (order.Order, error) {
	s := r.u.state()
	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, errs.NotFound("order", id)
	}
	delete(s.orders, id)

	return o, nil
}

func (r *memOrderRepo) Count(context.Context) (int64, error) {
	return int64(len(r.u.state().orders)), nil
}

func (r *memOrderRepo) TotalSales(context.Context) (decimal.NullDecimal, error) {
	s := r.u.state()
	if len(s.orders) == 0 {
		return decimal.NullDecimal{}, nil
	}
	total := decimal.Zero
	for _, o := range s.orders {
		total = total.Add(o.TotalPrice)
	}

	return decimal.NullDecimal{Decimal: total, Valid: true}, nil
}

type memOrderItemRepo struct{ u *memUOW }

func (r *memOrderItemRepo) Insert(_ context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error) {
	r.u.db.itemInserts++
	if r.u.db.failItemInsertAt > 0 && r.u.db.itemInserts == r.u.db.failItemInsertAt {
		return orderitem.OrderItem{}, errStorage
	}
	s := r.u.state()
	s.nextItemID++
	item.ID = s.nextItemID
	s.items[item.ID] = item

	return item, nil
}

func (r *memOrderItemRepo) GetByID(_ context.Context, id int64) (orderitem.OrderItem, error) {
	item, ok := r.u.state().items[id]
	if !ok {
		return orderitem.OrderItem{}, errs.NotFound("order item", id)
	}

	return item, nil
}

func (r *memOrderItemRepo) Query(_ context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	result := []orderitem.OrderItem{}
	for _, id := range filter.Ids {
		if item, ok := r.u.state().items[id]; ok {
			result = append(result, item)
		}
	}

	return result, nil
}

func (r *memOrderItemRepo) DeleteByID(_ context.Context, id int64) error {
	if err := r.u.db.failItemDelete[id]; err != nil {
		return err
	}
	s := r.u.state()
	if _, ok := s.items[id]; !ok {
		return errs.NotFound("order item", id)
	}
	delete(s.items, id)

	return nil
}

type memOutboxRepo struct{ u *memUOW }

func (r *memOutboxRepo) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	s := r.u.state()
	s.outbox = append(s.outbox, msg)

	return nil
}

func (r *memOutboxRepo) GetPendingMessages(context.Context, int) ([]outbox.OutboxMessage, error) {
	return r.u.state().outbox, nil
}

func (r *memOutboxRepo) Delete(context.Context, int64) error { return nil }

func (r *memOutboxRepo) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

// memProducts is a product price lookup.
type memProducts struct {
	mu       sync.Mutex
	products map[int64]product.Product
	lookups  int
}

func newMemProducts(prices map[int64]string) *memProducts {
	p := &memProducts{products: map[int64]product.Product{}}
	for id, price := range prices {
		p.products[id] = product.Product{ID: id, Price: decimal.RequireFromString(price)}
	}

	return p
}

func (p *memProducts) FindByID(_ context.Context, id int64) (product.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lookups++
	prod, ok := p.products[id]
	if !ok {
		return product.Product{}, errs.NotFound("product", id)
	}

	return prod, nil
}

func (p *memProducts) setPrice(id int64, price string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.products[id] = product.Product{ID: id, Price: decimal.RequireFromString(price)}
}

// memUsers is a user lookup.
type memUsers map[int64]bool

func (u memUsers) Exists(_ context.Context, id int64) (bool, error) {
	return u[id], nil
}
