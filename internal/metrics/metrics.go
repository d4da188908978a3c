package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vitalmente"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	insightsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "insights",
			Name:      "generated_total",
			Help:      "Total number of insights generated, by type.",
		},
		[]string{"type"},
	)

	insightRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "insights",
			Name:      "runs_total",
			Help:      "Total number of insight generation runs.",
		},
		[]string{"success"},
	)

	checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "checkouts_total",
			Help:      "Total number of checkout sessions requested.",
		},
		[]string{"plan", "success"},
	)

	webhooks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "webhooks_total",
			Help:      "Total number of payment webhooks received, by outcome.",
		},
		[]string{"outcome"},
	)

	subscriptionsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriptions",
			Name:      "expired_total",
			Help:      "Total number of subscriptions expired by the sweep.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		insightsGenerated,
		insightRuns,
		checkouts,
		webhooks,
		subscriptionsExpired,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncInFlight() {
	httpInFlight.Inc()
}

func DecInFlight() {
	httpInFlight.Dec()
}

// ObserveHTTPRequest records one handled request. route should be the
// registered route pattern, not the raw path.
func ObserveHTTPRequest(method string, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordInsightRun(success bool, insightTypes []string) {
	insightRuns.WithLabelValues(strconv.FormatBool(success)).Inc()
	for _, insightType := range insightTypes {
		insightsGenerated.WithLabelValues(insightType).Inc()
	}
}

func RecordCheckout(plan string, success bool) {
	if plan == "" {
		plan = "unknown"
	}
	checkouts.WithLabelValues(plan, strconv.FormatBool(success)).Inc()
}

func RecordWebhook(outcome string) {
	webhooks.WithLabelValues(outcome).Inc()
}

func RecordExpiredSubscriptions(count int64) {
	if count <= 0 {
		return
	}
	subscriptionsExpired.Add(float64(count))
}
