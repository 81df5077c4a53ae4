// Package metrics holds the process-wide prometheus collectors. They are
// registered on the default registry and served from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_commits_total",
		Help: "Sale commit attempts by outcome.",
	}, []string{"outcome"})

	LinesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_cart_lines_added_total",
		Help: "Cart lines accepted across all stations.",
	})

	ResolveFallbackHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_barcode_fallback_hits_total",
		Help: "Product lookups resolved through barcode zero-pad or zero-strip fallback.",
	})
)

// Commit outcomes.
const (
	OutcomeCommitted    = "committed"
	OutcomeInsufficient = "insufficient_stock"
	OutcomeConflict     = "conflict"
	OutcomeError        = "error"
)
