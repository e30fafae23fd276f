package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/mindful-ui/config"
	"github.com/target/mindful-ui/internal/adapters/authroles"
	"github.com/target/mindful-ui/internal/adapters/devauth"
	"github.com/target/mindful-ui/internal/adapters/oidc"
	redisadapter "github.com/target/mindful-ui/internal/adapters/redis"
	"github.com/target/mindful-ui/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth          config.AuthConfig
	RedisClient   redis.UniversalClient
	SessionPrefix string
	Logger        *slog.Logger
}

// AuthComponents is the result of BuildAuthService.
type AuthComponents struct {
	Service *service.AuthService
	// LogoutURL is the identity provider's end-session endpoint; empty in mock mode.
	LogoutURL string
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Service is nil if auth is not configured or configuration is invalid; the
// UI then treats every visitor as signed out.
func BuildAuthService(cfg AuthConfig) AuthComponents {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RedisClient == nil {
		cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		return AuthComponents{}
	}

	prefix := cfg.SessionPrefix
	if prefix == "" {
		prefix = "session:"
	}
	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, prefix)
	roleMapper := authroles.GroupRoleMapper{AdminGroup: cfg.Auth.AdminGroup}

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthService(cfg, sessionStore, roleMapper)
	case config.AuthModeOAuth:
		return buildOAuthService(cfg, sessionStore, roleMapper)
	default:
		return AuthComponents{}
	}
}

func buildDevAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	roleMapper authroles.GroupRoleMapper,
) AuthComponents {
	dev := cfg.Auth.DevAuth
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:          dev.UserID,
		Name:            dev.Name,
		Email:           dev.Email,
		Picture:         dev.Picture,
		Groups:          dev.Groups,
		SessionDuration: dev.SessionDuration,
	})
	if err != nil {
		cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		return AuthComponents{}
	}

	cfg.Logger.Warn("dev auth enabled; every sign-in becomes the configured identity", "user_id", dev.UserID)
	return AuthComponents{Service: service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		Roles:    roleMapper,
		Lister:   sessionStore,
	})}
}

func buildOAuthService(
	cfg AuthConfig,
	sessionStore *redisadapter.SessionStore,
	roleMapper authroles.GroupRoleMapper,
) AuthComponents {
	// Only enable when fully configured
	oauth := cfg.Auth.OAuth
	if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		cfg.Logger.Warn("AuthModeOAuth selected but required config missing; auth disabled",
			"discovery_url_empty", oauth.DiscoveryURL == "",
			"client_id_empty", oauth.ClientID == "",
			"client_secret_empty", oauth.ClientSecret == "",
		)
		return AuthComponents{}
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
		LogoutURL:    oauth.LogoutURL,
	})
	if err != nil {
		cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		return AuthComponents{}
	}

	return AuthComponents{
		Service: service.NewAuthService(service.AuthServiceOptions{
			Provider: prov,
			Sessions: sessionStore,
			Roles:    roleMapper,
			Lister:   sessionStore,
		}),
		LogoutURL: prov.LogoutURL(),
	}
}
