package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "niedziele_"

	ResultSuccess = "success"
	ResultError   = "error"

	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
)

var (
	registerOnce sync.Once

	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	exportsTotal  *prometheus.CounterVec
	refreshTotal  *prometheus.CounterVec
	registryDates *prometheus.GaugeVec
)

// Init registers collectors with reg, or with the default registerer when
// reg is nil. Only the first call has an effect.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		)
		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calendar_exports_total",
				Help: "Total calendar documents served by disposition",
			},
			[]string{"disposition"},
		)
		refreshTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "refresh_total",
				Help: "Total registry refreshes by result",
			},
			[]string{"result"},
		)
		registryDates = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "registry_dates",
				Help: "Number of trading Sundays in the active registry",
			},
			[]string{"year", "source"},
		)

		reg.MustRegister(
			httpRequests,
			httpLatency,
			exportsTotal,
			refreshTotal,
			registryDates,
		)
	})
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(route string, code int, duration time.Duration) {
	if route == "" {
		route = "unknown"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(route).Observe(duration.Seconds())
	}
}

// IncExport counts a served calendar document.
func IncExport(attachment bool) {
	disposition := DispositionInline
	if attachment {
		disposition = DispositionAttachment
	}
	if exportsTotal != nil {
		exportsTotal.WithLabelValues(disposition).Inc()
	}
}

// IncRefresh counts a registry refresh attempt.
func IncRefresh(result string) {
	if result == "" {
		result = ResultSuccess
	}
	if refreshTotal != nil {
		refreshTotal.WithLabelValues(result).Inc()
	}
}

// SetRegistry publishes the size of the active registry. Previous
// year/source series are dropped.
func SetRegistry(year int, source string, n int) {
	if registryDates == nil {
		return
	}
	registryDates.Reset()
	registryDates.WithLabelValues(strconv.Itoa(year), source).Set(float64(n))
}
