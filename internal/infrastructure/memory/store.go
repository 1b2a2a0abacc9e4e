// Package memory implementa los repositorios en memoria. Lo usan los tests de casos de uso y de HTTP.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/maizepoint-api/internal/application/inventory"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
// Run serializa las transacciones (equivale a los bloqueos de fila) y, si fn falla,
// deshace solo lo que escribió esa transacción.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	products  map[string]*entity.Product
	lots      map[string]*entity.StockLot
	movements []*entity.StockMovement
	orders    map[string]*entity.Order
	customers map[string]*entity.Customer
	farmers   map[string]*entity.Farmer

	failMovement error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:  map[string]*entity.Product{},
		lots:      map[string]*entity.StockLot{},
		orders:    map[string]*entity.Order{},
		customers: map[string]*entity.Customer{},
		farmers:   map[string]*entity.Farmer{},
	}
}

// FailMovementsWith hace que los siguientes Create de movimientos fallen con err (nil lo desactiva).
func (s *Store) FailMovementsWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failMovement = err
}

// Repos repositorios sobre este store, fuera de transacción.
func (s *Store) Repos() inventory.TxRepos {
	return s.repos(nil)
}

func (s *Store) repos(tx *txLog) inventory.TxRepos {
	return inventory.TxRepos{
		Lots:      &LotRepo{s: s, tx: tx},
		Movements: &MovementRepo{s: s, tx: tx},
		Orders:    &OrderRepo{s: s, tx: tx},
		Products:  &ProductRepo{s: s, tx: tx},
	}
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txLog{}
	if err := fn(s.repos(tx)); err != nil {
		s.rollback(tx)
		return err
	}
	return nil
}

// txLog acciones para deshacer las escrituras de una transacción, en orden de ejecución.
// Se registran y se aplican con s.mu tomado.
type txLog struct {
	undo []func()
}

func (t *txLog) record(f func()) {
	if t != nil {
		t.undo = append(t.undo, f)
	}
}

func (s *Store) rollback(tx *txLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
}

// restoreEntry devuelve la acción que deja m[id] como está ahora (o ausente).
func restoreEntry[T any](m map[string]*T, id string) func() {
	prev, ok := m[id]
	var saved T
	if ok {
		saved = *prev
	}
	return func() {
		if !ok {
			delete(m, id)
			return
		}
		c := saved
		m[id] = &c
	}
}

func (s *Store) removeMovement(id string) {
	for i, m := range s.movements {
		if m.ID == id {
			s.movements = append(s.movements[:i], s.movements[i+1:]...)
			return
		}
	}
}
