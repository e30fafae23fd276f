package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/target/mindful-ui/config"
	"github.com/target/mindful-ui/internal/observability/metrics"
)

// ObservabilityContainer groups the metrics registry and its collectors.
// Every field is nil when metrics are disabled.
type ObservabilityContainer struct {
	Registry *prometheus.Registry
	UI       *metrics.UI
	HTTP     *metrics.HTTP
	Handler  http.Handler
}

// buildObservability registers the UI and HTTP collectors. A registration
// failure disables metrics rather than the server.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) ObservabilityContainer {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.IsEnabled() {
		logger.Info("metrics disabled")
		return ObservabilityContainer{}
	}

	reg := metrics.NewRegistry()
	uiMetrics, err := metrics.NewUI(reg, cfg.Namespace)
	if err != nil {
		logger.Error("failed to register UI metrics", "error", err)
		return ObservabilityContainer{}
	}
	httpMetrics, err := metrics.NewHTTP(reg, cfg.Namespace)
	if err != nil {
		logger.Error("failed to register HTTP metrics", "error", err)
		return ObservabilityContainer{}
	}

	return ObservabilityContainer{
		Registry: reg,
		UI:       uiMetrics,
		HTTP:     httpMetrics,
		Handler:  metrics.Handler(reg),
	}
}
