// Package ui holds the server-side state machines behind the interactive page
// components. Each mounted component serializes its own transitions; the HTTP
// layer only dispatches browser interactions and renders the resulting models.
package ui

import (
	"context"

	domainauth "github.com/target/mindful-ui/internal/domain/auth"
)

// SessionSource is the owned session value a component observes.
// RequestSignOut is the only way a component may change it.
type SessionSource interface {
	Snapshot() domainauth.SessionState
	Subscribe(fn func(domainauth.SessionState)) (cancel func())
	RequestSignOut(ctx context.Context) error
}

// NotificationSink receives transient user-facing notifications.
type NotificationSink interface {
	Emit(n Notification)
}

// ThemeProvider reads and flips the color theme.
type ThemeProvider interface {
	Current() Theme
	Toggle() Theme
}

// RouteReader exposes the path the user is currently on.
type RouteReader interface {
	ActiveRoute() string
}

// Viewport reports the layout class at interaction time.
type Viewport interface {
	IsNarrow() bool
}

// Observer records component lifecycle and sign-out outcomes.
type Observer interface {
	SignOut(component string, err error)
	ViewMounted()
	ViewRemoved(reason string)
}

// NopObserver discards every observation.
type NopObserver struct{}

func (NopObserver) SignOut(string, error) {}
func (NopObserver) ViewMounted()          {}
func (NopObserver) ViewRemoved(string)    {}
