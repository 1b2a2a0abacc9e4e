package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/maizepoint-api/internal/infrastructure/metrics"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.OrderApproved("yellow", 150)
	c.OrderApproved("yellow", 50)
	c.ApprovalFailed("insufficient_stock")
	c.MovementRecorded("DEDUCTION")
	c.MovementRecorded("DEDUCTION")
	c.ObserveHTTP("POST", "/api/orders/:id/approve", 200, 20*time.Millisecond)

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	expected := `
# HELP maizepoint_bags_deducted_total Bags deducted from stock by order approvals
# TYPE maizepoint_bags_deducted_total counter
maizepoint_bags_deducted_total{product_id="yellow"} 200
# HELP maizepoint_stock_movements_total Stock movements recorded in the ledger
# TYPE maizepoint_stock_movements_total counter
maizepoint_stock_movements_total{type="DEDUCTION"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"maizepoint_bags_deducted_total", "maizepoint_stock_movements_total"))
}
