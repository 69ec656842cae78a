// Package metrics registers the Prometheus instruments for launch activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every instrument the launcher exports.
type Metrics struct {
	LaunchesTotal    *prometheus.CounterVec
	EntitiesCreated  *prometheus.CounterVec
	EntityErrors     *prometheus.CounterVec
	PlatformCalls    *prometheus.CounterVec
	PlatformDuration *prometheus.HistogramVec
	UploadsTotal     *prometheus.CounterVec
	UploadBytes      prometheus.Counter
}

// New registers all instruments on the given registerer. Pass
// prometheus.DefaultRegisterer in production; tests use a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LaunchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adlauncher_launches_total",
				Help: "Launches by path and outcome",
			},
			[]string{"path", "outcome"}, // path: simple|bulk; outcome: success|partial|fatal
		),
		EntitiesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adlauncher_entities_created_total",
				Help: "Remote entities created, by type",
			},
			[]string{"type"},
		),
		EntityErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adlauncher_entity_errors_total",
				Help: "Scoped per-entity failures, by type",
			},
			[]string{"type"},
		),
		PlatformCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adlauncher_platform_calls_total",
				Help: "Outbound platform API calls by endpoint and status class",
			},
			[]string{"endpoint", "status"},
		),
		PlatformDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adlauncher_platform_call_duration_seconds",
				Help:    "Outbound platform API call latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adlauncher_media_uploads_total",
				Help: "Media uploads by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		UploadBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "adlauncher_media_upload_bytes_total",
				Help: "Raw media bytes sent to the platform",
			},
		),
	}
}
