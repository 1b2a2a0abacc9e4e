package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errQuerier responde a toda consulta con el mismo error.
type errQuerier struct{ err error }

func (q errQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q errQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, q.err }

func (q errQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return errRow{q.err} }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

var badUUID = &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

func TestIsInvalidText(t *testing.T) {
	assert.True(t, isInvalidText(badUUID))
	assert.True(t, isInvalidText(errors.Join(errors.New("get"), badUUID)))
	assert.False(t, isInvalidText(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isInvalidText(errors.New("22P02")))
}

// Un id que no es UUID se trata como inexistente, no como error interno.
func TestGetOne_IDMalFormadoEsNoEncontrado(t *testing.T) {
	ctx := context.Background()
	q := errQuerier{err: badUUID}

	lot, err := NewStockLotRepository(q).GetForUpdate(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, lot)

	order, err := NewOrderRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, order)

	product, err := NewProductRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, product)

	farmer, err := NewFarmerRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, farmer)
}

func TestGetOne_OtrosErroresSePropagan(t *testing.T) {
	_, err := NewStockLotRepository(errQuerier{err: errors.New("conexión cerrada")}).GetByID(context.Background(), "abc")
	assert.Error(t, err)
}
