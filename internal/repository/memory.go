package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shagun/internal/domain"
)

// MemoryStore объединённое in-memory хранилище трёх коллекций
type MemoryStore struct {
	mu           sync.RWMutex
	productsByID map[string]domain.Product
	productOrder []string
	ordersByID   map[string]domain.Order
	usersByID    map[string]domain.User
	userOrder    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		productsByID: make(map[string]domain.Product),
		ordersByID:   make(map[string]domain.Order),
		usersByID:    make(map[string]domain.User),
	}
}

// Ensure interfaces
var (
	_ ProductRepository = (*MemoryStore)(nil)
	_ OrderRepository   = (*MemoryOrders)(nil)
	_ UserRepository    = (*MemoryUsers)(nil)
)

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

func copyProduct(p domain.Product) domain.Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	if err := prepareProduct(p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	m.productsByID[p.ID] = copyProduct(*p)
	m.productOrder = append(m.productOrder, p.ID)
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := copyProduct(p)
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	if err := prepareProduct(p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.productsByID[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = now()
	m.productsByID[p.ID] = copyProduct(*p)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.productsByID[id]; !ok {
		return ErrNotFound
	}
	delete(m.productsByID, id)
	for i, pid := range m.productOrder {
		if pid == id {
			m.productOrder = append(m.productOrder[:i], m.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

// List returns products in insertion order, like a collection scan.
func (m *MemoryStore) List(ctx context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, 0, len(m.productOrder))
	for _, id := range m.productOrder {
		out = append(out, copyProduct(m.productsByID[id]))
	}
	return out, nil
}

func (m *MemoryStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.productsByID = make(map[string]domain.Product)
	m.productOrder = nil
	return nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	if err := prepareOrder(o); err != nil {
		return err
	}
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	o.ID = newID()
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	cp.OrderItems = append([]domain.OrderItem(nil), o.OrderItems...)
	mo.store.ordersByID[o.ID] = cp
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	cp.OrderItems = append([]domain.OrderItem(nil), o.OrderItems...)
	return &cp, nil
}

func (mo *MemoryOrders) DeleteAll(ctx context.Context) error {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	mo.store.ordersByID = make(map[string]domain.Order)
	return nil
}

// UserRepository implementation on wrapper type
type MemoryUsers struct{ store *MemoryStore }

func NewMemoryUsers(store *MemoryStore) *MemoryUsers { return &MemoryUsers{store: store} }

func (r *MemoryUsers) Create(ctx context.Context, u *domain.User) error {
	if err := prepareUser(u); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u.ID = newID()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	r.store.usersByID[u.ID] = *u
	r.store.userOrder = append(r.store.userOrder, u.ID)
	return nil
}

// FindByEmail matches the address exactly; the earliest created match wins.
func (r *MemoryUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, id := range r.store.userOrder {
		if u := r.store.usersByID[id]; u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUsers) DeleteAll(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.usersByID = make(map[string]domain.User)
	r.store.userOrder = nil
	return nil
}
