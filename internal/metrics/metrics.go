// Package metrics exposes Prometheus collectors for the extraction path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExtractionsTotal counts extraction attempts by audit outcome and
	// serving provider, mirroring the request log.
	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yts_extractions_total",
		Help: "Extraction attempts by outcome and provider.",
	}, []string{"status", "provider"})

	// CacheLookups counts lookups per cache tier.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yts_cache_lookups_total",
		Help: "Cache tier lookups by tier and result.",
	}, []string{"tier", "result"})

	// CallbacksTotal counts worker callback deliveries.
	CallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yts_callbacks_total",
		Help: "Worker callback deliveries by result.",
	}, []string{"result"})
)
