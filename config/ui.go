package config

import "time"

const (
	defaultNarrowBreakpoint = 768
	defaultToastDuration    = 3 * time.Second
	defaultViewTTL          = 30 * time.Minute
	defaultResolveWait      = 150 * time.Millisecond
	defaultReapInterval     = time.Minute
	defaultMaxViews         = 10000
)

// UIConfig controls the server-side header and landing components.
type UIConfig struct {
	// NarrowBreakpoint is the viewport width in CSS pixels below which the
	// avatar control signs out instead of opening the profile dropdown.
	NarrowBreakpoint int `env:"NARROW_BREAKPOINT" envDefault:"768"`

	// ToastDuration is how long sign-out notifications stay visible.
	ToastDuration time.Duration `env:"TOAST_DURATION" envDefault:"3s"`

	// ViewTTL is how long a mounted page view survives without interaction.
	ViewTTL time.Duration `env:"VIEW_TTL" envDefault:"30m"`

	// ResolveWait bounds how long the first render waits for session resolution
	// before rendering the pending state.
	ResolveWait time.Duration `env:"RESOLVE_WAIT" envDefault:"150ms"`

	// ReapInterval is how often idle views are swept.
	ReapInterval time.Duration `env:"REAP_INTERVAL" envDefault:"1m"`

	// MaxViews caps mounted page views; the least recently used view is
	// evicted when a new page would exceed it.
	MaxViews int `env:"MAX_VIEWS" envDefault:"10000"`
}

// Sanitize applies guardrails to UI configuration values.
func (u *UIConfig) Sanitize() {
	if u.NarrowBreakpoint <= 0 {
		u.NarrowBreakpoint = defaultNarrowBreakpoint
	}
	if u.ToastDuration <= 0 {
		u.ToastDuration = defaultToastDuration
	}
	if u.ViewTTL < time.Minute {
		u.ViewTTL = defaultViewTTL
	}
	if u.ResolveWait < 0 {
		u.ResolveWait = defaultResolveWait
	}
	if u.ResolveWait > 2*time.Second {
		u.ResolveWait = 2 * time.Second
	}
	if u.ReapInterval < time.Second {
		u.ReapInterval = defaultReapInterval
	}
	if u.MaxViews <= 0 {
		u.MaxViews = defaultMaxViews
	}
	if u.ReapInterval > u.ViewTTL {
		u.ReapInterval = u.ViewTTL
	}
}
