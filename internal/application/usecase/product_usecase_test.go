package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/application/usecase"
	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/infrastructure/memory"
)

func TestProductUseCase_GetByIDIncluyeStock(t *testing.T) {
	store := memory.NewStore()
	store.PutProduct(&entity.Product{ID: "p1", Name: "Yellow Maize", IsAvailable: true})
	store.PutLot(&entity.StockLot{ID: "a", ProductID: "p1", QuantityBags: 100, QuantityTons: decimal.NewFromInt(5)})
	store.PutLot(&entity.StockLot{ID: "b", ProductID: "p1", QuantityBags: 30, QuantityTons: decimal.RequireFromString("1.5")})
	uc := usecase.NewProductUseCase(store.Repos().Products)

	out, err := uc.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(130), out.StockBags)
	assert.True(t, out.StockTons.Equal(decimal.RequireFromString("6.5")))

	_, err = uc.GetByID(context.Background(), "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_SetAvailability(t *testing.T) {
	store := memory.NewStore()
	store.PutProduct(&entity.Product{ID: "p1", Name: "Yellow Maize", IsAvailable: true})
	uc := usecase.NewProductUseCase(store.Repos().Products)

	_, err := uc.SetAvailability(context.Background(), entity.Actor{UserID: "u", Role: entity.RoleCustomer}, "p1", false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.SetAvailability(context.Background(), entity.Actor{UserID: "a", Role: entity.RoleAdmin}, "p1", false)
	require.NoError(t, err)
	assert.False(t, out.IsAvailable)
}

func TestProductUseCase_CreateEsIdempotentePorNombre(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Repos().Products)

	p, created, err := uc.Create(context.Background(), usecase.CreateProductInput{Name: "White Maize"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, []string{"50kg"}, p.PackagingSizes)

	again, created, err := uc.Create(context.Background(), usecase.CreateProductInput{Name: "White Maize"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, again.ID)

	list, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
