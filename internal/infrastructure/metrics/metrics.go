package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the approval lifecycle: adjustments, resolutions and issuing.
// A nil *Metrics is a valid no-op.
type Metrics struct {
	// Applied adjustment writes by kind and operation (insert, update, delete).
	AdjustmentsApplied *prometheus.CounterVec
	// Rejected adjustment writes by kind and reason (overlap, date_range, rule, store).
	AdjustmentsRejected *prometheus.CounterVec
	// Resolver outcomes by result code.
	Resolutions *prometheus.CounterVec
	// Approvals created by origin (issued, legacy_copy).
	ApprovalsCreated *prometheus.CounterVec
}

// New registers the metrics on reg; nil means the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		AdjustmentsApplied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "approvals_adjustments_applied_total",
			Help: "Adjustment writes committed, by kind and operation",
		}, []string{"kind", "operation"}),

		AdjustmentsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "approvals_adjustments_rejected_total",
			Help: "Adjustment writes rejected, by kind and reason",
		}, []string{"kind", "reason"}),

		Resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "approvals_resolutions_total",
			Help: "Approval resolutions by result code",
		}, []string{"code"}),

		ApprovalsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "approvals_created_total",
			Help: "Approvals created, by origin",
		}, []string{"origin"}),
	}
}

func (m *Metrics) IncAdjustmentApplied(kind, operation string) {
	if m != nil {
		m.AdjustmentsApplied.WithLabelValues(kind, operation).Inc()
	}
}

func (m *Metrics) IncAdjustmentRejected(kind, reason string) {
	if m != nil {
		m.AdjustmentsRejected.WithLabelValues(kind, reason).Inc()
	}
}

func (m *Metrics) IncResolution(code string) {
	if m != nil {
		m.Resolutions.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) IncApprovalCreated(origin string) {
	if m != nil {
		m.ApprovalsCreated.WithLabelValues(origin).Inc()
	}
}
