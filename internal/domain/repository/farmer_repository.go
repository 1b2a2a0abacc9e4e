package repository

import (
	"context"

	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// FarmerRepository lectura de agricultores (para validar entregas).
type FarmerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Farmer, error)
}
