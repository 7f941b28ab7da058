// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TimelinesBuilt counts day timelines reconstructed, by outcome
	TimelinesBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldtrace",
		Name:      "timelines_built_total",
		Help:      "Number of day timelines reconstructed by outcome",
	}, []string{"status"})

	// GeocodeLookups counts reverse geocoding lookups, by outcome
	GeocodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldtrace",
		Name:      "geocode_lookups_total",
		Help:      "Number of reverse geocoding lookups by outcome",
	}, []string{"status"})

	// AnalysisTasksTotal counts finished background analysis tasks
	AnalysisTasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldtrace",
		Name:      "analysis_tasks_total",
		Help:      "Number of finished analysis tasks by kind and status",
	}, []string{"kind", "status"})

	// RecordsIngested counts records accepted by the batch ingest endpoints
	RecordsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldtrace",
		Name:      "records_ingested_total",
		Help:      "Number of records accepted by batch ingestion",
	}, []string{"kind"})
)
