package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantflow_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plantflow_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// UploadsTotal counts upload attempts by outcome (success, rejected, failed).
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantflow_uploads_total",
			Help: "Spreadsheet uploads by outcome.",
		},
		[]string{"status"},
	)

	RowsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantflow_rows_ingested_total",
		Help: "Shipment rows inserted by uploads.",
	})

	RowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantflow_rows_skipped_total",
		Help: "Sheet rows dropped as blank or totals.",
	})

	CellsDefaulted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantflow_cells_defaulted_total",
			Help: "Cells that could not be parsed and fell back to a default.",
		},
		[]string{"kind"},
	)

	BatchesPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantflow_batches_pruned_total",
		Help: "Batches removed by the retention window.",
	})
)
