package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/maizepoint-api/internal/application/inventory"
	"github.com/jhoicas/maizepoint-api/internal/domain"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/internal/infrastructure/memory"
)

func newOrder(id, number string) *entity.Order {
	return &entity.Order{
		ID:           id,
		OrderNumber:  number,
		ProductID:    "yellow",
		QuantityBags: 10,
		QuantityTons: decimal.RequireFromString("0.5"),
		UnitPrice:    decimal.NewFromInt(350),
		Status:       entity.OrderStatusPending,
		CreatedAt:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Una transacción que falla deshace sus escrituras y no las que se hicieron fuera de ella mientras corría.
func TestRun_RollbackConservaEscriturasAjenas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.PutLot(&entity.StockLot{ID: "L1", ProductID: "yellow", QuantityBags: 100, QuantityTons: decimal.NewFromInt(5)})

	errFallo := errors.New("fallo en la tx")
	inside := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- store.Run(ctx, func(repos inventory.TxRepos) error {
			l, err := repos.Lots.GetForUpdate(ctx, "L1")
			if err != nil {
				return err
			}
			l.QuantityBags = 40
			if err := repos.Lots.UpdateQuantities(ctx, l); err != nil {
				return err
			}
			if err := repos.Movements.Create(ctx, &entity.StockMovement{ID: "M1", StockLotID: "L1", Type: entity.MovementDeduction}); err != nil {
				return err
			}
			if err := repos.Orders.Create(ctx, newOrder("dentro", "ORD0000000001")); err != nil {
				return err
			}
			close(inside)
			<-release
			return errFallo
		})
	}()

	<-inside
	require.NoError(t, store.Repos().Orders.Create(ctx, newOrder("fuera", "ORD0000000002")))
	close(release)
	require.ErrorIs(t, <-done, errFallo)

	assert.NotNil(t, store.Order("fuera"))
	assert.Nil(t, store.Order("dentro"))
	assert.Equal(t, int64(100), store.Lot("L1").QuantityBags)
	assert.Empty(t, store.Movements())
}

func TestRun_CommitConservaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.Run(ctx, func(repos inventory.TxRepos) error {
		return repos.Orders.Create(ctx, newOrder("O1", "ORD0000000001"))
	})
	require.NoError(t, err)
	require.NotNil(t, store.Order("O1"))
	assert.True(t, store.Order("O1").TotalPrice.Equal(decimal.NewFromInt(3500)))
}

func TestOrderRepo_NumeroDuplicado(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()

	require.NoError(t, repos.Orders.Create(ctx, newOrder("O1", "ORD0000000001")))
	err := repos.Orders.Create(ctx, newOrder("O2", "ORD0000000001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
