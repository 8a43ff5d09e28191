// Package metrics defines the custom Prometheus metrics for the inventory
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics are registered with the default registry on import and
// exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_user", "bad_password", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests turned away by the authorization guard.
// Label:
//   - reason: "missing_token", "invalid_token", "expired_token", "revoked_token", or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authorization guard.",
	},
	[]string{"reason"},
)

// TokensRevokedTotal counts sessions revoked through logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of session tokens revoked.",
	},
)

// ── Item metrics ──────────────────────────────────────────────────────────────

// ItemMutationsTotal counts successful inventory writes.
// Label:
//   - op: "create", "update", or "delete"
var ItemMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_mutations_total",
		Help:      "Total number of successful inventory mutations, by operation.",
	},
	[]string{"op"},
)

// ItemListDuration measures how long a filtered listing takes, creator lookup included.
var ItemListDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "item_list_duration_seconds",
		Help:      "Duration of item listing requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ItemListResultSize observes how many items a listing page returned.
var ItemListResultSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "item_list_result_size",
		Help:      "Number of items returned per listing page.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	},
)
