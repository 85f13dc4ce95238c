package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_assignments_total",
		Help: "Successful asset assignments.",
	})

	ReturnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_returns_total",
		Help: "Successful asset returns.",
	})

	AllocationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_allocation_failures_total",
		Help: "Assign/return attempts rejected by the state machine, by reason.",
	}, []string{"reason"})

	InvariantViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_invariant_violations_total",
		Help: "Detected multiple active allocations for a single asset.",
	})

	AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_audit_write_failures_total",
		Help: "Audit records that could not be written after a committed mutation.",
	})
)
