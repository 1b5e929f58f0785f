// Package metrics defines and registers the custom Prometheus metrics of the
// library catalog. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package load and are
// exposed on /metrics when the HTTP surface is enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogMutationsTotal counts catalog writes.
// Labels:
//   - op: "add_book", "remove_book" or "register_user"
//   - result: "ok", "not_found" or "error"
var CatalogMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_mutations_total",
		Help:      "Total number of catalog mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// BooksInCatalog tracks the current number of books, split by status.
// Label:
//   - status: "available" or "checked_out"
var BooksInCatalog = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "books_in_catalog",
		Help:      "Current number of books in the catalog, by lending status.",
	},
	[]string{"status"},
)

// ── Lending metrics ───────────────────────────────────────────────────────────

// LendingOperationsTotal counts borrow and return attempts.
// Labels:
//   - op: "borrow" or "return"
//   - result: "ok", "invalid_state", "invalid_input" or "error"
var LendingOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lending_operations_total",
		Help:      "Total number of borrow/return attempts, by operation and result.",
	},
	[]string{"op", "result"},
)

// StoreWriteDuration measures how long a full rewrite of a store takes.
// Label:
//   - store: "books", "users" or "loans"
var StoreWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_write_duration_seconds",
		Help:      "Duration of a full store rewrite.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"store"},
)
