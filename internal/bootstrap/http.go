package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/mindful-ui/config"
	httpx "github.com/target/mindful-ui/internal/http"
	"github.com/target/mindful-ui/internal/ui"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildHTTPHandler assembles the router and its middleware from the services.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	if cfg == nil {
		cfg = &HTTPServerConfig{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	return httpx.NewRouter(routerServices(cfg.Services, appCfg, cfg.RedisClient, logger))
}

func routerServices(
	svc ServiceContainer,
	appCfg *config.AppConfig,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
) httpx.RouterServices {
	services := httpx.RouterServices{
		Registry:      svc.Registry,
		Flash:         svc.Flash,
		Nav:           ui.DefaultNavItems(),
		Breakpoint:    appCfg.UI.NarrowBreakpoint,
		ToastDuration: appCfg.UI.ToastDuration,
		ResolveWait:   appCfg.UI.ResolveWait,
		CookieDomain:  appCfg.HTTP.CookieDomain,
		LogoutURL:     svc.LogoutURL,
		Metrics:       svc.Observability.Handler,
		IsDev:         appCfg.IsDev,
		Logger:        logger,
	}

	// Interface fields stay nil unless the concrete value is set.
	if svc.Auth != nil {
		services.Auth = svc.Auth
	}
	if svc.Observability.HTTP != nil {
		services.HTTPMetrics = svc.Observability.HTTP
	}
	if svc.Observability.UI != nil {
		services.UIObserver = svc.Observability.UI
	}
	if redisClient != nil {
		services.Ready = map[string]httpx.ReadinessCheck{"redis": RedisReadiness(redisClient)}
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		services.Compression = &httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel, Logger: logger}
	}
	return services
}

// NewHTTPServer returns a server with conservative timeouts. An empty addr
// falls back to :8080.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWaitTimeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
