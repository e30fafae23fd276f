package ui

import (
	"strings"
	"sync"
)

// Theme is the color scheme applied to the document root.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeState is an in-memory ThemeProvider seeded from the request cookie.
type ThemeState struct {
	mu      sync.Mutex
	current Theme
}

// NewThemeState returns a provider starting at initial, or light when initial is unknown.
func NewThemeState(initial Theme) *ThemeState {
	if _, ok := ParseTheme(string(initial)); !ok {
		initial = ThemeLight
	}
	return &ThemeState{current: initial}
}

func (s *ThemeState) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *ThemeState) Toggle() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.current.Toggled()
	return s.current
}

// Set replaces the theme, ignoring unknown values.
func (s *ThemeState) Set(t Theme) {
	if _, ok := ParseTheme(string(t)); !ok {
		return
	}
	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
}
