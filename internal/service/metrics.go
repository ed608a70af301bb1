package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	completionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dietplan_completion_requests_total",
			Help: "Total number of completion API calls by outcome",
		},
		[]string{"outcome"},
	)

	completionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dietplan_completion_duration_seconds",
			Help:    "Completion API latency in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	complianceRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dietplan_compliance_rejections_total",
			Help: "Total number of generated plans rejected by the compliance screen",
		},
		[]string{"diet"},
	)
)
