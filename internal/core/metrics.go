package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Ingest outcomes recorded in ingestsTotal.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

var (
	ingestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csvingest_ingests_total",
			Help: "Ingest attempts by dataset and outcome.",
		},
		[]string{"dataset", "outcome"},
	)
	rowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csvingest_rows_total",
			Help: "Rows seen by dataset; status is accepted or rejected by the parser.",
		},
		[]string{"dataset", "status"},
	)
	ingestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "csvingest_ingest_duration_seconds",
			Help:    "Time to read, parse and validate one file.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"dataset"},
	)
)

func init() {
	prometheus.MustRegister(ingestsTotal, rowsTotal, ingestDuration)
}

// recordIngest updates metrics for a finished ingest. result may be nil on failure.
func recordIngest(dataset string, result *IngestResult, err error) {
	switch {
	case err != nil || result == nil:
		ingestsTotal.WithLabelValues(dataset, OutcomeFailed).Inc()
		return
	case result.Valid:
		ingestsTotal.WithLabelValues(dataset, OutcomeValid).Inc()
	default:
		ingestsTotal.WithLabelValues(dataset, OutcomeInvalid).Inc()
	}

	rowsTotal.WithLabelValues(dataset, "accepted").Add(float64(len(result.Parse.Data)))
	rowsTotal.WithLabelValues(dataset, "rejected").Add(float64(countRowErrors(result.Parse.Errors)))
	ingestDuration.WithLabelValues(dataset).Observe(result.Duration.Seconds())
}

// countRowErrors counts parse errors that refer to a single row.
func countRowErrors(errs []string) int {
	n := 0
	for _, e := range errs {
		if isRowError(e) {
			n++
		}
	}
	return n
}
