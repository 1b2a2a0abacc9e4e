package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

var _ repository.FarmerRepository = (*FarmerRepo)(nil)

// FarmerRepo lectura de agricultores.
type FarmerRepo struct {
	q Querier
}

// NewFarmerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFarmerRepository(q Querier) *FarmerRepo {
	return &FarmerRepo{q: q}
}

// GetByID obtiene un agricultor; (nil, nil) si no existe.
func (r *FarmerRepo) GetByID(ctx context.Context, id string) (*entity.Farmer, error) {
	query := `
		SELECT id, full_name, mobile_number, region, district, community, is_approved, status, created_at, updated_at
		FROM farmers WHERE id = $1`
	var f entity.Farmer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.FullName, &f.MobileNumber, &f.Region, &f.District, &f.Community,
		&f.IsApproved, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get farmer: %w", err)
	}
	return &f, nil
}
