// Package metrics expone contadores Prometheus del flujo de órdenes y del libro de stock.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/maizepoint-api/internal/application/ports"
)

var _ ports.Metrics = (*Collector)(nil)

// Collector implementa ports.Metrics y las métricas HTTP.
type Collector struct {
	ordersApproved   *prometheus.CounterVec
	bagsDeducted     *prometheus.CounterVec
	approvalFailures *prometheus.CounterVec
	movements        *prometheus.CounterVec
	requestCounter   *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
}

// NewCollector crea y registra las métricas en reg (prometheus.DefaultRegisterer en producción).
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		ordersApproved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maizepoint_orders_approved_total",
			Help: "Orders approved with FIFO stock deduction",
		}, []string{"product_id"}),
		bagsDeducted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maizepoint_bags_deducted_total",
			Help: "Bags deducted from stock by order approvals",
		}, []string{"product_id"}),
		approvalFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maizepoint_order_approval_failures_total",
			Help: "Rejected order approvals by reason",
		}, []string{"reason"}),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maizepoint_stock_movements_total",
			Help: "Stock movements recorded in the ledger",
		}, []string{"type"}),
		requestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(c.ordersApproved, c.bagsDeducted, c.approvalFailures, c.movements, c.requestCounter, c.requestLatency)
	return c
}

func (c *Collector) OrderApproved(productID string, bags int64) {
	c.ordersApproved.WithLabelValues(productID).Inc()
	c.bagsDeducted.WithLabelValues(productID).Add(float64(bags))
}

func (c *Collector) ApprovalFailed(reason string) {
	c.approvalFailures.WithLabelValues(reason).Inc()
}

func (c *Collector) MovementRecorded(movementType string) {
	c.movements.WithLabelValues(movementType).Inc()
}

// ObserveHTTP registra una petición atendida. route es el patrón de la ruta, no el path concreto.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
