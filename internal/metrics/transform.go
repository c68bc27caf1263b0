// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics exposes Prometheus instrumentation for the daemon.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransformTotal tracks transform outcomes by result and error kind.
	// The kind label is "none" for successes.
	TransformTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surtd_transform_total",
		Help: "Total number of URL transforms by result and error kind",
	}, []string{"result", "kind"})

	// TransformDuration tracks single-transform latency. Transforms are
	// pure CPU work, so the buckets sit well below typical HTTP budgets.
	TransformDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "surtd_transform_duration_seconds",
		Help:    "Time taken for one URL transform",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	})

	// BatchSize tracks how many URLs arrive per batch request.
	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "surtd_batch_size",
		Help:    "Number of URLs per batch transform request",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000},
	})

	// IndexRecords tracks the number of records in the key index.
	IndexRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "surtd_index_records",
		Help: "Number of records currently stored in the key index",
	})

	// IndexOpsTotal tracks index operations by op and result.
	IndexOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surtd_index_ops_total",
		Help: "Total number of index operations by op and result",
	}, []string{"op", "result"})
)

// ObserveTransform records one transform outcome with its latency.
func ObserveTransform(duration time.Duration, errKind string) {
	result := "ok"
	kind := "none"
	if errKind != "" {
		result = "error"
		kind = errKind
	}
	TransformTotal.WithLabelValues(result, kind).Inc()
	TransformDuration.Observe(duration.Seconds())
}

// ObserveBatch records the size of one batch request.
func ObserveBatch(size int) {
	BatchSize.Observe(float64(size))
}

// IncIndexOp records one index operation outcome.
func IncIndexOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	IndexOpsTotal.WithLabelValues(op, result).Inc()
}
