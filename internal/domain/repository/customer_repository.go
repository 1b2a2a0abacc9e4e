package repository

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// CustomerRepository lectura de perfiles de cliente.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Customer, error)
}
