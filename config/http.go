package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// FlashHashKey and FlashBlockKey sign and encrypt the flash cookie that carries
	// toasts across redirects. Random keys are generated at startup when empty,
	// which invalidates pending flashes on restart.
	FlashHashKey  string `env:"APP_FLASH_HASH_KEY"`
	FlashBlockKey string `env:"APP_FLASH_BLOCK_KEY"`

	// CompressionEnabled enables gzip compression for text-based assets.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`

	// CompressionLevel is the gzip compression level (1-9).
	// Default is 6 (standard gzip default).
	CompressionLevel int `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	// Clamp compression level to valid gzip range (1-9)
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}

	h.FlashHashKey = strings.TrimSpace(h.FlashHashKey)
	h.FlashBlockKey = strings.TrimSpace(h.FlashBlockKey)
	// securecookie accepts AES-128/192/256 block keys only.
	switch len(h.FlashBlockKey) {
	case 0, 16, 24, 32:
	default:
		h.FlashBlockKey = ""
	}
	if len(h.FlashHashKey) < 32 {
		h.FlashHashKey = ""
		h.FlashBlockKey = ""
	}
}

// HasFlashKeys reports whether stable flash cookie keys were configured.
func (h *HTTPConfig) HasFlashKeys() bool {
	return h.FlashHashKey != ""
}
