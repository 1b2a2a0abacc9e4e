package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

// LotRepo implementa repository.StockLotRepository.
type LotRepo struct {
	s  *Store
	tx *txLog
}

// MovementRepo implementa repository.StockMovementRepository.
type MovementRepo struct {
	s  *Store
	tx *txLog
}

// OrderRepo implementa repository.OrderRepository.
type OrderRepo struct {
	s  *Store
	tx *txLog
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct {
	s  *Store
	tx *txLog
}

// CustomerRepo implementa repository.CustomerRepository.
type CustomerRepo struct{ s *Store }

// FarmerRepo implementa repository.FarmerRepository.
type FarmerRepo struct{ s *Store }

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Farmers repositorio de agricultores.
func (s *Store) Farmers() *FarmerRepo { return &FarmerRepo{s: s} }

var (
	_ repository.StockLotRepository      = (*LotRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.FarmerRepository        = (*FarmerRepo)(nil)
)

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ─── Lotes ───────────────────────────────────────────────────────────────────

func (r *LotRepo) Create(_ context.Context, lot *entity.StockLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lots[lot.ID]; ok {
		return fmt.Errorf("%w: stock lot %s", domain.ErrDuplicate, lot.ID)
	}
	r.tx.record(restoreEntry(r.s.lots, lot.ID))
	c := *lot
	r.s.lots[lot.ID] = &c
	return nil
}

func (r *LotRepo) GetByID(_ context.Context, id string) (*entity.StockLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockLot, error) {
	return r.GetByID(ctx, id)
}

func (r *LotRepo) ListAvailableForUpdate(_ context.Context, productID string) ([]*entity.StockLot, error) {
	lots := r.s.filterLots(func(l *entity.StockLot) bool {
		return l.ProductID == productID && l.QuantityBags > 0
	})
	sortFIFO(lots)
	return lots, nil
}

func (r *LotRepo) SumAvailable(_ context.Context, productID string) (int64, error) {
	var n int64
	for _, l := range r.s.filterLots(func(l *entity.StockLot) bool { return l.ProductID == productID }) {
		n += l.QuantityBags
	}
	return n, nil
}

func (r *LotRepo) UpdateQuantities(_ context.Context, lot *entity.StockLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.lots[lot.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.tx.record(restoreEntry(r.s.lots, lot.ID))
	cur.QuantityBags = lot.QuantityBags
	cur.QuantityTons = lot.QuantityTons
	cur.UpdatedAt = lot.UpdatedAt
	return nil
}

func (r *LotRepo) UpdateLocation(_ context.Context, lot *entity.StockLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.lots[lot.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.tx.record(restoreEntry(r.s.lots, lot.ID))
	cur.WarehouseLocation = lot.WarehouseLocation
	cur.UpdatedAt = lot.UpdatedAt
	return nil
}

func (r *LotRepo) ExistsForProduct(_ context.Context, productID string) (bool, error) {
	return len(r.s.filterLots(func(l *entity.StockLot) bool { return l.ProductID == productID })) > 0, nil
}

func (r *LotRepo) List(_ context.Context, f repository.StockLotFilter) ([]*entity.StockLot, error) {
	lots := r.s.filterLots(func(l *entity.StockLot) bool {
		return (f.ProductID == "" || l.ProductID == f.ProductID) &&
			(f.WarehouseLocation == "" || l.WarehouseLocation == f.WarehouseLocation) &&
			(f.SourceType == "" || l.SourceType == f.SourceType)
	})
	sort.Slice(lots, func(i, j int) bool {
		if !lots[i].ReceivedAt.Equal(lots[j].ReceivedAt) {
			return lots[i].ReceivedAt.After(lots[j].ReceivedAt)
		}
		return lots[i].ID < lots[j].ID
	})
	return page(lots, f.Limit, f.Offset), nil
}

func (r *LotRepo) ListLowStock(_ context.Context, thresholdBags int64) ([]*entity.StockLot, error) {
	lots := r.s.filterLots(func(l *entity.StockLot) bool { return l.QuantityBags < thresholdBags })
	sort.Slice(lots, func(i, j int) bool {
		if lots[i].QuantityBags != lots[j].QuantityBags {
			return lots[i].QuantityBags < lots[j].QuantityBags
		}
		return lots[i].ID < lots[j].ID
	})
	return lots, nil
}

func (r *LotRepo) ListExpiringBetween(_ context.Context, from, to time.Time) ([]*entity.StockLot, error) {
	lots := r.s.filterLots(func(l *entity.StockLot) bool {
		return l.ExpiryAlertDate != nil && !l.ExpiryAlertDate.Before(from) && !l.ExpiryAlertDate.After(to)
	})
	sortByExpiry(lots)
	return lots, nil
}

func (r *LotRepo) ListExpiredBefore(_ context.Context, date time.Time) ([]*entity.StockLot, error) {
	lots := r.s.filterLots(func(l *entity.StockLot) bool {
		return l.ExpiryAlertDate != nil && l.ExpiryAlertDate.Before(date)
	})
	sortByExpiry(lots)
	return lots, nil
}

func (s *Store) filterLots(keep func(*entity.StockLot) bool) []*entity.StockLot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.StockLot, 0)
	for _, l := range s.lots {
		if keep(l) {
			c := *l
			out = append(out, &c)
		}
	}
	return out
}

func sortFIFO(lots []*entity.StockLot) {
	sort.Slice(lots, func(i, j int) bool {
		if !lots[i].ReceivedAt.Equal(lots[j].ReceivedAt) {
			return lots[i].ReceivedAt.Before(lots[j].ReceivedAt)
		}
		return lots[i].ID < lots[j].ID
	})
}

func sortByExpiry(lots []*entity.StockLot) {
	sort.Slice(lots, func(i, j int) bool {
		if !lots[i].ExpiryAlertDate.Equal(*lots[j].ExpiryAlertDate) {
			return lots[i].ExpiryAlertDate.Before(*lots[j].ExpiryAlertDate)
		}
		return lots[i].ID < lots[j].ID
	})
}

// ─── Movimientos ─────────────────────────────────────────────────────────────

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failMovement != nil {
		return r.s.failMovement
	}
	c := *m
	r.s.movements = append(r.s.movements, &c)
	r.tx.record(func() { r.s.removeMovement(c.ID) })
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

// List más reciente primero (orden inverso de inserción).
func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.StockLotID != "" && m.StockLotID != f.StockLotID {
			continue
		}
		if f.OrderID != "" && (m.OrderID == nil || *m.OrderID != f.OrderID) {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	return page(out, f.Limit, f.Offset), nil
}

// ─── Órdenes ─────────────────────────────────────────────────────────────────

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.orders {
		if cur.OrderNumber == o.OrderNumber {
			return fmt.Errorf("%w: order number %s", domain.ErrDuplicate, o.OrderNumber)
		}
	}
	r.tx.record(restoreEntry(r.s.orders, o.ID))
	o.RecalculateTotal()
	c := *o
	r.s.orders[o.ID] = &c
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.tx.record(restoreEntry(r.s.orders, o.ID))
	o.RecalculateTotal()
	c := *o
	r.s.orders[o.ID] = &c
	return nil
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.Lock()
	out := make([]*entity.Order, 0)
	for _, o := range r.s.orders {
		if (f.CustomerID == "" || o.CustomerID == f.CustomerID) &&
			(f.ProductID == "" || o.ProductID == f.ProductID) &&
			(f.Status == "" || o.Status == f.Status) {
			c := *o
			out = append(out, &c)
		}
	}
	r.s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Limit, f.Offset), nil
}

// ─── Productos ───────────────────────────────────────────────────────────────

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.products {
		if cur.Name == p.Name {
			return fmt.Errorf("%w: product %q", domain.ErrDuplicate, p.Name)
		}
	}
	r.tx.record(restoreEntry(r.s.products, p.ID))
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Name == name {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) SetAvailability(_ context.Context, id string, available bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.tx.record(restoreEntry(r.s.products, id))
	p.IsAvailable = available
	p.UpdatedAt = time.Now()
	return nil
}

func (r *ProductRepo) CurrentStock(_ context.Context, id string) (repository.ProductStock, error) {
	st := repository.ProductStock{TotalTons: decimal.Zero}
	for _, l := range r.s.filterLots(func(l *entity.StockLot) bool { return l.ProductID == id }) {
		st.TotalBags += l.QuantityBags
		st.TotalTons = st.TotalTons.Add(l.QuantityTons)
	}
	return st, nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		c := *p
		out = append(out, &c)
	}
	r.s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

// ─── Clientes y agricultores ─────────────────────────────────────────────────

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CustomerRepo) GetByUserID(_ context.Context, userID string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FarmerRepo) GetByID(_ context.Context, id string) (*entity.Farmer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.farmers[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}
