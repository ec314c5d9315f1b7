package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts executed requests by kind and outcome ("ok" or the error kind)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minidb_requests_total",
			Help: "Total number of requests executed by the engine",
		},
		[]string{"kind", "status"},
	)

	// RequestDuration measures engine execution time per request kind
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minidb_request_duration_seconds",
			Help:    "Duration of engine requests in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		},
		[]string{"kind"},
	)

	// ScansTotal counts selections by candidate source (index or sequential)
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minidb_scans_total",
			Help: "Total number of selections by scan type",
		},
		[]string{"scan_type"},
	)

	// RowsReturned counts rows returned by selections
	RowsReturned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "minidb_rows_returned_total",
			Help: "Total number of rows returned by selections",
		},
	)

	// TableRows tracks the current row count of each table
	TableRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "minidb_table_rows",
			Help: "Number of rows stored per table",
		},
		[]string{"table"},
	)
)

// Handler exposes the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
