package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
)

func TestWriteReport(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	soon := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	r := &dto.StockReport{
		GeneratedAt: now,
		TotalBags:   12500,
		TotalTons:   decimal.RequireFromString("625.5"),
		LotsChecked: 3,
		LowStock:    []dto.StockLotResponse{{ProductID: "p1", QuantityBags: 40, WarehouseLocation: "Warehouse A"}},
		ExpiringSoon: []dto.StockLotResponse{
			{ProductID: "p1", QuantityBags: 1200, WarehouseLocation: "Warehouse B", ExpiryAlertDate: &soon},
		},
		Expired: []dto.StockLotResponse{{ProductID: "p2", QuantityBags: 10, WarehouseLocation: "Warehouse C", ExpiryAlertDate: &past}},
	}
	names := map[string]string{"p1": "Yellow Maize", "p2": "White Maize"}

	var buf bytes.Buffer
	writeReport(&buf, r, func(id string) string { return names[id] })
	out := buf.String()

	assert.Contains(t, out, "Yellow Maize - 40 bags remaining at Warehouse A")
	assert.Contains(t, out, "Yellow Maize expires in 10 days (1,200 bags at Warehouse B)")
	assert.Contains(t, out, "White Maize - EXPIRED on 2026-05-01")
	assert.Contains(t, out, "Total stock items checked: 3 (12,500 bags, 625.500 t)")
}

func TestWriteReport_SinAlertas(t *testing.T) {
	var buf bytes.Buffer
	writeReport(&buf, &dto.StockReport{GeneratedAt: time.Now()}, func(id string) string { return id })
	out := buf.String()

	assert.Contains(t, out, "no low stock items")
	assert.Contains(t, out, "no items expiring soon")
	assert.Contains(t, out, "no expired items")
}
