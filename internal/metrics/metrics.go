// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealplanner_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealplanner_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Domain
	RecipesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mealplanner_recipes_created_total",
			Help: "Total number of recipes created",
		},
	)

	DuplicateRecipeNames = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mealplanner_recipe_duplicate_names_total",
			Help: "Recipe creations rejected because the name was already taken",
		},
	)

	PlansGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealplanner_plans_generated_total",
			Help: "Meal plan generation attempts by outcome",
		},
		[]string{"outcome"}, // "ok", "insufficient", "error"
	)

	PlansSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mealplanner_plans_saved_total",
			Help: "Total number of meal plans saved",
		},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealplanner_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)
)

// RecordAPIRequest records one handled request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordPlanGeneration records the outcome of a plan generation attempt.
func RecordPlanGeneration(outcome string) {
	PlansGenerated.WithLabelValues(outcome).Inc()
}
