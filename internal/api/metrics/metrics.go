// Package metrics defines and registers all custom Prometheus metrics for the
// server. It is the single source of truth for metric names, labels, and help
// strings.
//
// Metrics use promauto and register themselves with the default registry on
// package load; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "autenticacion"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts strategy verifications.
// Labels:
//   - strategy: "register" or "login"
//   - result: "success", "failure" (user-visible rejection) or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication strategy verifications.",
	},
	[]string{"strategy", "result"},
)

// SessionsDestroyedTotal counts explicit logouts and expiry purges.
// Label:
//   - cause: "logout" or "expired"
var SessionsDestroyedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_destroyed_total",
		Help:      "Total number of sessions destroyed, by cause.",
	},
	[]string{"cause"},
)

// ── Realtime metrics ──────────────────────────────────────────────────────────

// ConnectedClients tracks the number of clients currently attached to the hub.
var ConnectedClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connected_clients",
		Help:      "Number of realtime clients currently connected.",
	},
)

// BroadcastsTotal counts full-state broadcasts sent to all clients.
// Label:
//   - collection: "productos" or "mensajes"
var BroadcastsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcasts_total",
		Help:      "Total number of full-collection broadcasts.",
	},
	[]string{"collection"},
)

// BroadcastErrorsTotal counts broadcast cycles skipped because the
// authoritative re-fetch failed.
// Label:
//   - collection: "productos" or "mensajes"
var BroadcastErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_errors_total",
		Help:      "Total number of broadcast cycles skipped due to re-fetch failures.",
	},
	[]string{"collection"},
)
