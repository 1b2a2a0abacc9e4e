package ports

// Metrics puerto para métricas del flujo de cumplimiento y del libro de stock.
// Los casos de uso lo llaman solo tras un commit exitoso (o al fallar una aprobación).
type Metrics interface {
	OrderApproved(productID string, bags int64)
	ApprovalFailed(reason string)
	MovementRecorded(movementType string)
}

// NoopMetrics implementación vacía para tests y despliegues sin Prometheus.
type NoopMetrics struct{}

func (NoopMetrics) OrderApproved(string, int64) {}
func (NoopMetrics) ApprovalFailed(string)       {}
func (NoopMetrics) MovementRecorded(string)     {}
