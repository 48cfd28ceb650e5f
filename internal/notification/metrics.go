package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultEnqueued = "enqueued"
	resultDropped  = "dropped"
	resultSent     = "sent"
	resultFailed   = "failed"
	resultSkipped  = "skipped"
)

var (
	notificationEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "approval",
		Subsystem: "notification",
		Name:      "events_total",
		Help:      "Notification events broken down by kind and outcome.",
	}, []string{"kind", "result"})

	notificationQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "approval",
		Subsystem: "notification",
		Name:      "queue_depth",
		Help:      "Events waiting in the notification queue.",
	})
)
