// Package metrics exposes the service's prometheus counters and the
// /metrics endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ticks_ingested_total", Help: "Ticks durably stored, by symbol"},
		[]string{"symbol"},
	)
	TicksDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ticks_dropped_total", Help: "Ticks discarded before storage, by reason"},
		[]string{"reason"},
	)
	FeedReconnects = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "feed_reconnects_total", Help: "Upstream trade stream reconnect attempts"},
	)
	BatchFlushes = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tick_batch_flushes_total", Help: "Batches flushed to the tick store"},
	)
	PairQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "pair_queries_total", Help: "Pair analytics queries served, by outcome"},
		[]string{"outcome"},
	)
)

// Drop reasons used with TicksDropped.
const (
	DropReasonMalformed  = "malformed"
	DropReasonInvalid    = "invalid"
	DropReasonBufferFull = "buffer_full"
	DropReasonStoreError = "store_error"
)

func init() {
	prometheus.MustRegister(TicksIngested, TicksDropped, FeedReconnects, BatchFlushes, PairQueries)
}

// Serve starts the metrics endpoint in the background and returns the
// server so the caller can shut it down.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
