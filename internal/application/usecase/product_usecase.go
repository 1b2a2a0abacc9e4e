package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

// ProductUseCase consulta de productos con su stock agregado y control de disponibilidad.
// El stock no se edita aquí: solo cambia vía el libro de movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// CreateProductInput datos mínimos de un producto (usado por el seed).
type CreateProductInput struct {
	Name           string
	Description    string
	PackagingSizes []string
}

// Create crea un producto disponible. Devuelve el existente si ya hay uno con ese nombre.
func (uc *ProductUseCase) Create(ctx context.Context, in CreateProductInput) (*entity.Product, bool, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, false, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	sizes := in.PackagingSizes
	if len(sizes) == 0 {
		sizes = []string{"50kg"}
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           name,
		Description:    in.Description,
		PackagingSizes: sizes,
		IsAvailable:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, false, err
	}
	return product, true, nil
}

// GetByID obtiene un producto con su stock actual (suma de lotes).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.repo.CurrentStock(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(product, stock)
	return &out, nil
}

// List lista productos con su stock.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		stock, err := uc.repo.CurrentStock(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, toProductResponse(p, stock))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// SetAvailability habilita o retira un producto del catálogo (solo admin/staff).
func (uc *ProductUseCase) SetAvailability(ctx context.Context, actor entity.Actor, id string, available bool) (*dto.ProductResponse, error) {
	if !actor.IsBackOffice() {
		return nil, domain.ErrForbidden
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func toProductResponse(p *entity.Product, stock repository.ProductStock) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		PackagingSizes: p.PackagingSizes,
		IsAvailable:    p.IsAvailable,
		StockBags:      stock.TotalBags,
		StockTons:      stock.TotalTons,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
