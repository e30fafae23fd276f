package ui

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/target/mindful-ui/internal/domain/auth"
)

// ErrSessionSourceRequired is returned when a component is built without a session.
var ErrSessionSourceRequired = errors.New("session source is required")

// HeaderOptions configures a HeaderNav.
type HeaderOptions struct {
	Session       SessionSource
	Theme         ThemeProvider
	Route         RouteReader
	Sink          NotificationSink
	Nav           []NavItem
	ToastDuration time.Duration
	Logger        *slog.Logger
	Observer      Observer
}

// HeaderState is the component-local UI state of a HeaderNav.
type HeaderState struct {
	MobileMenuOpen bool
	AuthModalOpen  bool
	DropdownOpen   bool
}

// UserSummary is what the UI shows about the signed-in user.
type UserSummary struct {
	Name     string
	Email    string
	PhotoURL string
	Initial  string
}

func summarize(st domainauth.SessionState) *UserSummary {
	if !st.IsPresent() {
		return nil
	}
	return &UserSummary{
		Name:     st.Session.Label(),
		Email:    st.Session.Email,
		PhotoURL: st.Session.PhotoURL,
		Initial:  st.Session.Initial(),
	}
}

// HeaderModel is everything the header template needs for one render.
type HeaderModel struct {
	Nav    []NavLink
	Theme  Theme
	Status domainauth.Status
	User   *UserSummary

	Pending    bool
	ShowSignIn bool
	ShowAvatar bool

	MobileMenuOpen bool
	AuthModalOpen  bool
	DropdownOpen   bool
	SigningOut     bool
}

// HeaderNav is the navigation header: route highlighting, theme toggle,
// mobile menu, profile dropdown and the sign-in modal trigger.
type HeaderNav struct {
	mu sync.Mutex

	session SessionSource
	theme   ThemeProvider
	route   RouteReader
	nav     []NavItem
	policy  signOutPolicy

	unsubscribe func()

	mobileMenuOpen bool
	authModalOpen  bool
	dropdownOpen   bool
	signingOut     bool
	destroyed      bool
}

// NewHeaderNav mounts a header with every overlay closed.
func NewHeaderNav(opts HeaderOptions) (*HeaderNav, error) {
	if opts.Session == nil {
		return nil, ErrSessionSourceRequired
	}
	theme := opts.Theme
	if theme == nil {
		theme = NewThemeState(ThemeLight)
	}
	route := opts.Route
	if route == nil {
		route = NewLocation("/")
	}
	nav := opts.Nav
	if nav == nil {
		nav = DefaultNavItems()
	}

	h := &HeaderNav{
		session: opts.Session,
		theme:   theme,
		route:   route,
		nav:     nav,
		policy:  newSignOutPolicy(ComponentHeader, opts.Sink, opts.ToastDuration, opts.Logger, opts.Observer),
	}
	h.unsubscribe = opts.Session.Subscribe(h.onSession)
	return h, nil
}

func (h *HeaderNav) onSession(st domainauth.SessionState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	switch {
	case st.IsPresent():
		h.authModalOpen = false
	case st.IsAbsent():
		h.dropdownOpen = false
	}
}

// ToggleMobileMenu flips the mobile menu. Opening it closes the dropdown.
func (h *HeaderNav) ToggleMobileMenu() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	h.mobileMenuOpen = !h.mobileMenuOpen
	if h.mobileMenuOpen {
		h.dropdownOpen = false
	}
}

// CloseMobileMenu closes the mobile menu, as when a menu link is followed.
func (h *HeaderNav) CloseMobileMenu() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	h.mobileMenuOpen = false
}

// OpenAuthModal opens the sign-in modal. It does nothing unless the session
// is known to be absent.
func (h *HeaderNav) OpenAuthModal() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed || !h.session.Snapshot().IsAbsent() {
		return
	}
	h.authModalOpen = true
	h.mobileMenuOpen = false
	h.dropdownOpen = false
}

func (h *HeaderNav) CloseAuthModal() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	h.authModalOpen = false
}

func (h *HeaderNav) CloseDropdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	h.dropdownOpen = false
}

// ToggleTheme flips the theme and returns the new one.
func (h *HeaderNav) ToggleTheme() Theme {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return h.theme.Current()
	}
	return h.theme.Toggle()
}

// Logout signs the present session out. At most one request is in flight per
// header; extra calls meanwhile are ignored. The outcome is reported through
// the notification sink and never returned.
func (h *HeaderNav) Logout(ctx context.Context) {
	h.mu.Lock()
	if h.destroyed || h.signingOut || !h.session.Snapshot().IsPresent() {
		h.mu.Unlock()
		return
	}
	h.signingOut = true
	h.mu.Unlock()

	err := h.session.RequestSignOut(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.signingOut = false
	if h.destroyed {
		return
	}
	if err != nil && !h.session.Snapshot().IsPresent() {
		// Ended elsewhere while we were asking.
		return
	}
	h.policy.report(ctx, err)
}

// ActivateAvatar handles a press on the user avatar. On a narrow viewport it
// closes the mobile menu and signs out; otherwise it opens the profile dropdown.
func (h *HeaderNav) ActivateAvatar(ctx context.Context, vp Viewport) {
	h.mu.Lock()
	if h.destroyed || !h.session.Snapshot().IsPresent() {
		h.mu.Unlock()
		return
	}
	if vp != nil && vp.IsNarrow() {
		h.mobileMenuOpen = false
		h.mu.Unlock()
		h.Logout(ctx)
		return
	}
	h.dropdownOpen = true
	h.mobileMenuOpen = false
	h.mu.Unlock()
}

func (h *HeaderNav) State() HeaderState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HeaderState{
		MobileMenuOpen: h.mobileMenuOpen,
		AuthModalOpen:  h.authModalOpen,
		DropdownOpen:   h.dropdownOpen,
	}
}

// Render snapshots the header for the template.
func (h *HeaderNav) Render() HeaderModel {
	h.mu.Lock()
	defer h.mu.Unlock()

	st := h.session.Snapshot()
	return HeaderModel{
		Nav:            ActiveNav(h.nav, h.route.ActiveRoute()),
		Theme:          h.theme.Current(),
		Status:         st.Status,
		User:           summarize(st),
		Pending:        st.IsPending(),
		ShowSignIn:     st.IsAbsent(),
		ShowAvatar:     st.IsPresent(),
		MobileMenuOpen: h.mobileMenuOpen,
		AuthModalOpen:  h.authModalOpen && st.IsAbsent(),
		DropdownOpen:   h.dropdownOpen && st.IsPresent(),
		SigningOut:     h.signingOut,
	}
}

// Destroy detaches the header from its session. Later calls and late
// sign-out results are ignored.
func (h *HeaderNav) Destroy() {
	h.mu.Lock()
	if h.destroyed {
		h.mu.Unlock()
		return
	}
	h.destroyed = true
	unsubscribe := h.unsubscribe
	h.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}
