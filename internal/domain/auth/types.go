package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// defaultLabel is shown when a session carries neither a display name nor an email.
const defaultLabel = "User"

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (OIDC sub)
	Name      string // full display name when the IdP provides one
	FirstName string
	LastName  string
	Email     string
	Picture   string
	Groups    []string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// DisplayName returns the best human-readable name the identity carries.
func (i Identity) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Role        Role      `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }

// Label is the name shown for the signed-in user: the display name, else the
// local part of the email, else a generic fallback.
func (s Session) Label() string {
	if name := strings.TrimSpace(s.DisplayName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(s.Email, "@"); ok && local != "" {
		return local
	}
	if s.Email != "" {
		return s.Email
	}
	return defaultLabel
}

// Initial returns the first letter of Label, upper-cased, for avatar fallbacks.
func (s Session) Initial() string {
	for _, r := range s.Label() {
		return strings.ToUpper(string(r))
	}
	return ""
}
