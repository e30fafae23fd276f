package ui

import (
	"strconv"
	"strings"
	"sync"
)

// DefaultNarrowBreakpoint is the width in CSS pixels below which the layout is mobile.
const DefaultNarrowBreakpoint = 768

// MeasuredViewport is a Viewport built from a width reported by the client.
// A zero Width means the client did not report one and is treated as wide.
type MeasuredViewport struct {
	Width      int
	Breakpoint int
}

// ViewportWidth applies the default breakpoint to px.
func ViewportWidth(px int) MeasuredViewport {
	return MeasuredViewport{Width: px, Breakpoint: DefaultNarrowBreakpoint}
}

func (v MeasuredViewport) IsNarrow() bool {
	bp := v.Breakpoint
	if bp <= 0 {
		bp = DefaultNarrowBreakpoint
	}
	return v.Width > 0 && v.Width < bp
}

// ParseViewport reads a width form value. Unparseable or non-positive input
// yields an unmeasured (wide) viewport.
func ParseViewport(raw string, breakpoint int) MeasuredViewport {
	v := MeasuredViewport{Breakpoint: breakpoint}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return v
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 || f > 1<<20 {
		return v
	}
	v.Width = int(f)
	return v
}

// Location is the RouteReader for a mounted view. The HTTP layer updates it
// as the user navigates.
type Location struct {
	mu   sync.RWMutex
	path string
}

// NewLocation returns a Location at path.
func NewLocation(path string) *Location {
	return &Location{path: path}
}

func (l *Location) ActiveRoute() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}

func (l *Location) Set(path string) {
	if path == "" {
		return
	}
	l.mu.Lock()
	l.path = path
	l.mu.Unlock()
}
