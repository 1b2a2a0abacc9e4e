package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/maizepoint-api/internal/application/inventory"
	"github.com/jhoicas/maizepoint-api/internal/application/usecase"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

// seedActor aparece como performed_by en los movimientos de carga inicial.
const seedActor = "seed"

type sampleLot struct {
	bags     int64
	tons     string
	grade    string
	location string
	ageDays  int
	expiryIn int
}

type sampleProduct struct {
	name  string
	desc  string
	sizes []string
	lots  []sampleLot
}

var catalog = []sampleProduct{
	{
		name:  "Yellow Maize",
		desc:  "Premium quality yellow maize",
		sizes: []string{"50kg bag", "100kg bag", "1 ton"},
		lots: []sampleLot{
			{bags: 320, tons: "16", grade: "Premium", location: "Warehouse A", ageDays: 21, expiryIn: 120},
			{bags: 180, tons: "9", grade: "Standard", location: "Warehouse B", ageDays: 4, expiryIn: 160},
		},
	},
	{
		name:  "White Maize",
		desc:  "High-quality white maize",
		sizes: []string{"50kg bag", "100kg bag", "1 ton"},
		lots: []sampleLot{
			{bags: 450, tons: "22.5", grade: "Premium", location: "Warehouse C", ageDays: 30, expiryIn: 60},
			{bags: 90, tons: "4.5", grade: "Standard", location: "Warehouse A", ageDays: 2, expiryIn: 25},
		},
	},
	{
		name:  "Mixed Maize",
		desc:  "Yellow and white maize mix",
		sizes: []string{"50kg bag", "100kg bag"},
		lots: []sampleLot{
			{bags: 240, tons: "12", grade: "Standard", location: "Warehouse B", ageDays: 10, expiryIn: 90},
		},
	},
}

type seeder struct {
	products *usecase.ProductUseCase
	tx       inventory.TxRunner
	log      *logger.Logger
	now      time.Time
}

func (s *seeder) run(ctx context.Context) error {
	for _, sp := range catalog {
		product, created, err := s.products.Create(ctx, usecase.CreateProductInput{
			Name:           sp.name,
			Description:    sp.desc,
			PackagingSizes: sp.sizes,
		})
		if err != nil {
			return fmt.Errorf("producto %s: %w", sp.name, err)
		}
		s.log.Info().Str("product", product.Name).Bool("created", created).Msg("producto")

		if err := s.seedLots(ctx, product, sp.lots); err != nil {
			return fmt.Errorf("lotes de %s: %w", sp.name, err)
		}
	}
	return nil
}

// seedLots recibe los lotes por el Ledger (cada uno con su movimiento ADDITION) en una sola tx.
func (s *seeder) seedLots(ctx context.Context, product *entity.Product, lots []sampleLot) error {
	return s.tx.Run(ctx, func(repos inventory.TxRepos) error {
		exists, err := repos.Lots.ExistsForProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		if exists {
			s.log.Info().Str("product", product.Name).Msg("ya tiene stock, se omite")
			return nil
		}
		ledger := inventory.NewTxLedger(repos)
		for _, l := range lots {
			expiry := s.now.AddDate(0, 0, l.expiryIn)
			lot, _, err := ledger.Receive(ctx, inventory.ReceiveInput{
				ProductID:         product.ID,
				QuantityBags:      l.bags,
				QuantityTons:      decimal.RequireFromString(l.tons),
				SourceType:        entity.SourceMarketPurchase,
				QualityGrade:      l.grade,
				MoistureContent:   decimal.RequireFromString("13.5"),
				WarehouseLocation: l.location,
				CostPrice:         decimal.RequireFromString("230.00"),
				ReceivedAt:        s.now.AddDate(0, 0, -l.ageDays),
				ExpiryAlertDate:   &expiry,
			}, inventory.MovementMeta{PerformedBy: seedActor})
			if err != nil {
				return err
			}
			s.log.Info().Str("product", product.Name).Str("lot_id", lot.ID).Int64("bags", lot.QuantityBags).Msg("lote recibido")
		}
		return nil
	})
}
