package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "oauth")
	t.Setenv("ADMIN_GROUP", "mindful-admins")
	t.Setenv("OAUTH_CLIENT_ID", "app-client")
	t.Setenv("OAUTH_CLIENT_SECRET", "super-secret")
	t.Setenv("OAUTH_REDIRECT_URL", "https://app.example.com/auth/callback")
	t.Setenv("OAUTH_DISCOVERY_URL", "https://login.example.com/.well-known/openid-configuration")
	t.Setenv("OAUTH_SCOPE", "openid profile email")
	t.Setenv("DEV_AUTH_USER_ID", "dev-user")
	t.Setenv("DEV_AUTH_NAME", "Dev Person")
	t.Setenv("DEV_AUTH_EMAIL", "dev@example.com")
	t.Setenv("DEV_AUTH_GROUPS", "admins;devs")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode: AuthModeOAuth,
		OAuth: OAuthConfig{
			ClientID:     "app-client",
			ClientSecret: "super-secret",
			RedirectURL:  "https://app.example.com/auth/callback",
			Scope:        "openid profile email",
			DiscoveryURL: "https://login.example.com/.well-known/openid-configuration",
		},
		DevAuth: DevAuthConfig{
			UserID:          "dev-user",
			Name:            "Dev Person",
			Email:           "dev@example.com",
			Groups:          []string{"admins", "devs"},
			SessionDuration: 8 * time.Hour,
		},
		AdminGroup: "mindful-admins",
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeMock {
		t.Errorf("expected mock auth by default, got %q", cfg.Auth.Mode)
	}
	if cfg.UI.NarrowBreakpoint != 768 {
		t.Errorf("expected breakpoint 768, got %d", cfg.UI.NarrowBreakpoint)
	}
	if cfg.UI.ToastDuration != 3*time.Second {
		t.Errorf("expected toast duration 3s, got %v", cfg.UI.ToastDuration)
	}
	if cfg.Redis.SessionPrefix != "session:" {
		t.Errorf("expected session prefix %q, got %q", "session:", cfg.Redis.SessionPrefix)
	}
	if !cfg.Observability.Metrics.IsEnabled() {
		t.Errorf("expected metrics enabled by default")
	}
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    AuthMode
		expectError bool
	}{
		{input: "oauth", expected: AuthModeOAuth},
		{input: "MOCK", expected: AuthModeMock},
		{input: "saml", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestUIConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    UIConfig
		expected UIConfig
	}{
		{
			name:  "zero values fall back to defaults",
			input: UIConfig{},
			expected: UIConfig{
				NarrowBreakpoint: 768,
				ToastDuration:    3 * time.Second,
				ViewTTL:          30 * time.Minute,
				ResolveWait:      0,
				ReapInterval:     time.Minute,
				MaxViews:         10000,
			},
		},
		{
			name: "resolve wait is capped",
			input: UIConfig{
				NarrowBreakpoint: 640,
				ToastDuration:    5 * time.Second,
				ViewTTL:          10 * time.Minute,
				ResolveWait:      10 * time.Second,
				ReapInterval:     30 * time.Second,
			},
			expected: UIConfig{
				NarrowBreakpoint: 640,
				ToastDuration:    5 * time.Second,
				ViewTTL:          10 * time.Minute,
				ResolveWait:      2 * time.Second,
				ReapInterval:     30 * time.Second,
				MaxViews:         10000,
			},
		},
		{
			name: "explicit view cap is kept",
			input: UIConfig{
				NarrowBreakpoint: 768,
				ToastDuration:    3 * time.Second,
				ViewTTL:          30 * time.Minute,
				ReapInterval:     time.Minute,
				MaxViews:         50,
			},
			expected: UIConfig{
				NarrowBreakpoint: 768,
				ToastDuration:    3 * time.Second,
				ViewTTL:          30 * time.Minute,
				ReapInterval:     time.Minute,
				MaxViews:         50,
			},
		},
		{
			name: "reap interval never exceeds ttl",
			input: UIConfig{
				NarrowBreakpoint: 768,
				ToastDuration:    3 * time.Second,
				ViewTTL:          2 * time.Minute,
				ReapInterval:     time.Hour,
			},
			expected: UIConfig{
				NarrowBreakpoint: 768,
				ToastDuration:    3 * time.Second,
				ViewTTL:          2 * time.Minute,
				ReapInterval:     2 * time.Minute,
				MaxViews:         10000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			cfg.Sanitize()
			if cfg != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, cfg)
			}
		})
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 12, FlashHashKey: "short", FlashBlockKey: "0123456789abcdef"}
	cfg.Sanitize()

	if cfg.CompressionLevel != 9 {
		t.Errorf("expected compression level clamped to 9, got %d", cfg.CompressionLevel)
	}
	if cfg.HasFlashKeys() {
		t.Errorf("expected short hash key to be discarded")
	}
	if cfg.FlashBlockKey != "" {
		t.Errorf("expected block key to be discarded with hash key")
	}

	cfg = HTTPConfig{
		CompressionLevel: 0,
		FlashHashKey:     " 0123456789abcdef0123456789abcdef ",
		FlashBlockKey:    "not-a-valid-aes-length",
	}
	cfg.Sanitize()

	if cfg.CompressionLevel != 1 {
		t.Errorf("expected compression level clamped to 1, got %d", cfg.CompressionLevel)
	}
	if !cfg.HasFlashKeys() {
		t.Errorf("expected trimmed hash key to be kept")
	}
	if cfg.FlashBlockKey != "" {
		t.Errorf("expected invalid block key to be dropped, got %q", cfg.FlashBlockKey)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:   true,
		Namespace: " mindful-ui ",
	}

	cfg.Sanitize()

	if cfg.Namespace != "mindful" {
		t.Fatalf("expected invalid namespace to fall back, got %q", cfg.Namespace)
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:   true,
		Namespace: " breath_app ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.Namespace != "breath_app" {
		t.Fatalf("expected namespace to be trimmed, got %q", cfg.Namespace)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatalf("expected NODE_ENV=development to enable dev mode")
	}
}
