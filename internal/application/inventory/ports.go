package inventory

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Lots      repository.StockLotRepository
	Movements repository.StockMovementRepository
	Orders    repository.OrderRepository
	Products  repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback completo en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
