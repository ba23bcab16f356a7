// Package metrics exposes Prometheus counters for the ingestion path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestTotal counts ingest requests by outcome: created, invalid or error.
	IngestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agridata_ingest_requests_total",
		Help: "Ingest requests by outcome.",
	}, []string{"outcome"})

	// ReadingsCreated counts successfully persisted readings.
	ReadingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agridata_readings_created_total",
		Help: "Readings written to the store.",
	})
)
