package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	KMAAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nalssibot_kma_api_calls_total",
			Help: "Total KMA surface observation API calls",
		},
		[]string{"station", "status"},
	)

	KMAAPILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nalssibot_kma_api_latency_seconds",
			Help:    "KMA API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"station"},
	)

	ForecastAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nalssibot_forecast_api_calls_total",
			Help: "Total village forecast API calls",
		},
		[]string{"status"},
	)

	SyntheticObservationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nalssibot_synthetic_observations_total",
			Help: "Observations served from the synthetic fallback",
		},
	)

	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nalssibot_weather_cache_hits_total",
			Help: "Weather cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nalssibot_notifications_sent_total",
			Help: "Notifications delivered, by alert kind",
		},
		[]string{"kind"},
	)

	NotificationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nalssibot_notification_failures_total",
			Help: "Notification deliveries that failed, by alert kind",
		},
		[]string{"kind"},
	)
)
