// Package metrics defines and registers all custom Prometheus metrics for
// the photoshare API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; expose them through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "photoshare"

// ── Friend relationship metrics ──────────────────────────────────────────────

// FriendRequestsTotal counts accepted SendRequest calls.
// Label:
//   - outcome: "outgoing" (request installed) or "implicit_accept" (mutual
//     request converted straight into a friendship)
var FriendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "friend_requests_total",
		Help:      "Total number of friend requests processed, by outcome.",
	},
	[]string{"outcome"},
)

// RelationshipRollbacksTotal counts pair-writes whose second document write
// failed and whose first write was rolled back successfully.
var RelationshipRollbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relationship_rollbacks_total",
		Help:      "Total number of relationship mutations rolled back after a failed counterpart write.",
	},
)

// RelationshipPartialFailuresTotal counts pair-writes left inconsistent:
// the second write failed and every rollback attempt failed too.
var RelationshipPartialFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relationship_partial_failures_total",
		Help:      "Total number of relationship mutations that could not be rolled back.",
	},
)

// ── Photo metrics ────────────────────────────────────────────────────────────

// PhotosUploadedTotal counts successfully stored photo uploads.
var PhotosUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photos_uploaded_total",
		Help:      "Total number of photos uploaded.",
	},
)

// CommentsAddedTotal counts comments appended to photos.
var CommentsAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_added_total",
		Help:      "Total number of comments added to photos.",
	},
)

// LikesToggledTotal counts like-list mutations.
// Label:
//   - action: "like" or "unlike"
var LikesToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_toggled_total",
		Help:      "Total number of like/unlike operations applied to photos.",
	},
	[]string{"action"},
)

// ── File cleanup metrics ─────────────────────────────────────────────────────

// FilesCleanedTotal counts backing-file removals after photo deletion.
// Label:
//   - result: "ok" or "error"
var FilesCleanedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "files_cleaned_total",
		Help:      "Total number of best-effort image file removals, by result.",
	},
	[]string{"result"},
)

// CleanupQueueDepth tracks files waiting in each cleanup worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var CleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cleanup_queue_depth",
		Help:      "Current number of file removals pending in each cleanup worker channel.",
	},
	[]string{"worker_id"},
)
