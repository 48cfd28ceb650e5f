package domain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var workflowOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "approval",
	Subsystem: "workflow",
	Name:      "operations_total",
	Help:      "Workflow commands broken down by operation and result.",
}, []string{"operation", "result"})

func observe(operation string, err error) {
	workflowOperations.WithLabelValues(operation, resultLabel(err)).Inc()
}
