// Package metrics defines and registers the domain Prometheus metrics for the
// articles API. HTTP request metrics come from the echoprometheus middleware;
// this package only holds business counters.
//
// Metrics are registered with the default Prometheus registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/montech/articles-api/internal/core/domain"
)

const namespace = "articles"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful signups.
// Label:
//   - role: "author", "editor" or "other" (see RoleLabel)
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// RoleLabel maps a role name to a bounded label value. Role names come from
// unauthenticated signup bodies, so anything but the known roles is "other".
func RoleLabel(role string) string {
	switch role {
	case domain.RoleAuthor, domain.RoleEditor:
		return role
	default:
		return "other"
	}
}

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found" or "invalid_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Article metrics ───────────────────────────────────────────────────────────

var ArticlesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created.",
	},
)

var ArticlesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_deleted_total",
		Help:      "Total number of articles deleted.",
	},
)

// ArticleStatusChangesTotal counts editorial decisions.
// Label:
//   - status: the status set by the editor ("pending", "approved", "rejected")
var ArticleStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_status_changes_total",
		Help:      "Total number of article status changes, by new status.",
	},
	[]string{"status"},
)
