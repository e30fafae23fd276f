// Package metrics exposes Prometheus collectors for the UI server.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result constants for metric labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// NewRegistry returns a registry preloaded with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// UI records component outcomes and view lifecycle. It satisfies ui.Observer.
type UI struct {
	signOuts     *prometheus.CounterVec
	viewsMounted prometheus.Counter
	viewsRemoved *prometheus.CounterVec
	activeViews  prometheus.Gauge
}

// NewUI registers the UI collectors under namespace.
func NewUI(reg prometheus.Registerer, namespace string) (*UI, error) {
	m := &UI{
		signOuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ui",
			Name:      "sign_outs_total",
			Help:      "Sign-out attempts by component and result.",
		}, []string{"component", "result"}),
		viewsMounted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ui",
			Name:      "views_mounted_total",
			Help:      "Page views mounted on the server.",
		}),
		viewsRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ui",
			Name:      "views_removed_total",
			Help:      "Page views removed, by reason.",
		}, []string{"reason"}),
		activeViews: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ui",
			Name:      "active_views",
			Help:      "Page views currently mounted.",
		}),
	}
	if err := registerAll(reg, m.signOuts, m.viewsMounted, m.viewsRemoved, m.activeViews); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *UI) SignOut(component string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.signOuts.WithLabelValues(component, result).Inc()
}

func (m *UI) ViewMounted() {
	m.viewsMounted.Inc()
	m.activeViews.Inc()
}

func (m *UI) ViewRemoved(reason string) {
	m.viewsRemoved.WithLabelValues(reason).Inc()
	m.activeViews.Dec()
}

// HTTP records request counts and latencies per route pattern.
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTP(reg prometheus.Registerer, namespace string) (*HTTP, error) {
	m := &HTTP{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if err := registerAll(reg, m.requests, m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// Observe records one finished request. An empty route is reported as "unmatched".
func (m *HTTP) Observe(method, route string, code int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

func registerAll(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	var errs []error
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("register metrics: %w", errors.Join(errs...))
	}
	return nil
}
