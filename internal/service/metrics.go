package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipeMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savory_recipe_mutations_total",
			Help: "Total number of committed recipe mutations",
		},
		[]string{"operation"},
	)

	authEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savory_auth_events_total",
			Help: "Authentication attempts by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	imageUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "savory_image_upload_bytes",
			Help:    "Size of accepted recipe image uploads",
			Buckets: prometheus.ExponentialBuckets(16*1024, 4, 6),
		},
	)
)

func authOutcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
