package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/mindful-ui/config"
	httpx "github.com/target/mindful-ui/internal/http"
	"github.com/target/mindful-ui/internal/service"
	"github.com/target/mindful-ui/internal/ui"
	"golang.org/x/sync/errgroup"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	LogoutURL string
	// Registry owns the mounted page views and their components.
	Registry      *ui.Registry
	Flash         *httpx.FlashCookies
	Observability ObservabilityContainer
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the auth service, the view registry and their observers.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	obs := buildObservability(logger, cfg.Observability.Metrics)

	auth := BuildAuthService(AuthConfig{
		Auth:          cfg.Auth,
		RedisClient:   deps.RedisClient,
		SessionPrefix: cfg.Redis.SessionPrefix,
		Logger:        logger,
	})

	flash, err := BuildFlashCookies(cfg.HTTP, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	var observer ui.Observer
	if obs.UI != nil {
		observer = obs.UI
	}
	registry := ui.NewRegistry(ui.RegistryOptions{
		TTL:      cfg.UI.ViewTTL,
		MaxViews: cfg.UI.MaxViews,
		Observer: observer,
		Logger:   logger,
	})

	return ServiceContainer{
		Auth:          auth.Service,
		LogoutURL:     auth.LogoutURL,
		Registry:      registry,
		Flash:         flash,
		Observability: obs,
	}, nil
}

// BuildFlashCookies creates the flash cookie codec from the configured keys,
// or from random keys when none are set.
func BuildFlashCookies(cfg config.HTTPConfig, logger *slog.Logger) (*httpx.FlashCookies, error) {
	opts := httpx.FlashOptions{Domain: cfg.CookieDomain}
	if cfg.HasFlashKeys() {
		opts.HashKey = []byte(cfg.FlashHashKey)
		if cfg.FlashBlockKey != "" {
			opts.BlockKey = []byte(cfg.FlashBlockKey)
		}
	} else if logger != nil {
		logger.Warn("flash cookie keys not configured; using random keys")
	}

	flash, err := httpx.NewFlashCookies(opts)
	if err != nil {
		return nil, fmt.Errorf("build flash cookies: %w", err)
	}
	return flash, nil
}

// ServiceOrchestrationConfig contains everything RunServicesWithShutdown needs.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// RunServicesWithShutdown serves HTTP and sweeps idle views until ctx is
// cancelled, SIGINT or SIGTERM arrives, or one of them fails. It then shuts
// the server down gracefully and releases every mounted view.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := BuildHTTPHandler(&HTTPServerConfig{
		Config:      cfg.Config,
		Services:    cfg.Services,
		RedisClient: cfg.RedisClient,
		Logger:      logger,
	})
	server := NewHTTPServer(cfg.Config.HTTP.Addr, handler)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if cfg.Services.Registry != nil {
		group.Go(func() error {
			return cfg.Services.Registry.Run(gctx, cfg.Config.UI.ReapInterval)
		})
	}
	group.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down services...")
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.WithoutCancel(gctx),
			Server:  server,
			Logger:  logger,
		})
	})

	return group.Wait()
}
