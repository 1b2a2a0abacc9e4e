package memory

import "github.com/jhoicas/maizepoint-api/internal/domain/entity"

// Helpers de carga e inspección directa del estado (sin pasar por casos de uso).

func (s *Store) PutProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	s.products[p.ID] = &c
}

func (s *Store) PutLot(l *entity.StockLot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *l
	s.lots[l.ID] = &c
}

func (s *Store) PutOrder(o *entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *o
	c.RecalculateTotal()
	s.orders[o.ID] = &c
}

func (s *Store) PutCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.customers[c.ID] = &cp
}

func (s *Store) PutFarmer(f *entity.Farmer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *f
	s.farmers[f.ID] = &cp
}

// Lot copia del lote o nil.
func (s *Store) Lot(id string) *entity.StockLot {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lots[id]
	if !ok {
		return nil
	}
	c := *l
	return &c
}

// Order copia de la orden o nil.
func (s *Store) Order(id string) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil
	}
	c := *o
	return &c
}

// Movements copia del libro en orden de inserción.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StockMovement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, *m)
	}
	return out
}
