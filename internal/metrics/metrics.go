package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodgram"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users",
	})

	RecipesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipes_created_total",
		Help:      "Total number of created recipes",
	})

	RecipesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipes_deleted_total",
		Help:      "Total number of deleted recipes",
	})

	// RelationChanges counts favorite and shopping cart changes.
	// action is "add" or "remove".
	RelationChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipe_relation_changes_total",
		Help:      "Favorite and shopping cart additions and removals",
	}, []string{"kind", "action"})

	SubscriptionChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscription_changes_total",
		Help:      "Subscriptions created and removed",
	}, []string{"action"})

	ShoppingListDownloads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shopping_list_downloads_total",
		Help:      "Total number of downloaded shopping lists",
	})

	ImageUploadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_upload_failures_total",
		Help:      "Failed uploads to object storage",
	}, []string{"folder"})
)
