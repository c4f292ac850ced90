package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "monitor"

var (
	// HTTPRequests counts handled requests.
	// Labels: method, route (mux path template), status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests handled",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ActivityIngested counts stored activity records.
	// Labels: kind (app, web, fs)
	ActivityIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activity",
		Name:      "ingested_total",
		Help:      "Total activity records stored",
	}, []string{"kind"})

	// AlertsRaised counts alerts produced by the blocked-site matcher.
	// Labels: severity
	AlertsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "policy",
		Name:      "alerts_total",
		Help:      "Total blocked-site alerts raised",
	}, []string{"severity"})

	// PipelineFailures counts ingestion side steps that failed and were skipped.
	// Labels: step (policy_lookup, alert_store, alert_publish, touch)
	PipelineFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activity",
		Name:      "pipeline_failures_total",
		Help:      "Ingestion side steps that failed and were skipped",
	}, []string{"step"})

	// Sweeps counts presence sweeps.
	// Labels: status (success, error)
	Sweeps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "presence",
		Name:      "sweeps_total",
		Help:      "Total presence sweeps run",
	}, []string{"status"})

	DevicesMarkedOffline = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "presence",
		Name:      "marked_offline_total",
		Help:      "Devices demoted to offline by the staleness sweep",
	})
)
