package ui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/target/mindful-ui/internal/domain/auth"
)

// StartSessionPath is where every landing call-to-action leads.
const StartSessionPath = "/breathe"

// LandingOptions configures a LandingView.
type LandingOptions struct {
	Session       SessionSource
	Sink          NotificationSink
	ToastDuration time.Duration
	Logger        *slog.Logger
	Observer      Observer
}

// PrimaryAction is the landing call-to-action.
type PrimaryAction struct {
	Label string
	Href  string
}

// LandingModel is the render input of the landing hero.
type LandingModel struct {
	Status  domainauth.Status
	Loading bool

	// PrimaryAction is nil while loading.
	PrimaryAction *PrimaryAction
	User          *UserSummary
	ShowSignOut   bool
	ShowSignIn    bool
	AuthModalOpen bool
	SigningOut    bool
}

// LandingView is the marketing entry point. Its sign-in modal is independent
// of the header's.
type LandingView struct {
	mu sync.Mutex

	session SessionSource
	policy  signOutPolicy

	unsubscribe func()

	authModalOpen bool
	signingOut    bool
	destroyed     bool
}

func NewLandingView(opts LandingOptions) (*LandingView, error) {
	if opts.Session == nil {
		return nil, ErrSessionSourceRequired
	}
	v := &LandingView{
		session: opts.Session,
		policy:  newSignOutPolicy(ComponentLanding, opts.Sink, opts.ToastDuration, opts.Logger, opts.Observer),
	}
	v.unsubscribe = opts.Session.Subscribe(v.onSession)
	return v, nil
}

func (v *LandingView) onSession(st domainauth.SessionState) {
	if !st.IsPresent() {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.destroyed {
		v.authModalOpen = false
	}
}

// OpenAuthModal opens the landing sign-in modal when nobody is signed in.
func (v *LandingView) OpenAuthModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.destroyed || !v.session.Snapshot().IsAbsent() {
		return
	}
	v.authModalOpen = true
}

func (v *LandingView) CloseAuthModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.destroyed {
		return
	}
	v.authModalOpen = false
}

func (v *LandingView) AuthModalOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.authModalOpen
}

// SignOut ends the present session with the same outcome reporting as the header.
func (v *LandingView) SignOut(ctx context.Context) {
	v.mu.Lock()
	if v.destroyed || v.signingOut || !v.session.Snapshot().IsPresent() {
		v.mu.Unlock()
		return
	}
	v.signingOut = true
	v.mu.Unlock()

	err := v.session.RequestSignOut(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.signingOut = false
	if v.destroyed {
		return
	}
	if err != nil && !v.session.Snapshot().IsPresent() {
		return
	}
	v.policy.report(ctx, err)
}

func (v *LandingView) Render() LandingModel {
	v.mu.Lock()
	defer v.mu.Unlock()

	st := v.session.Snapshot()
	m := LandingModel{Status: st.Status, SigningOut: v.signingOut}
	switch {
	case st.IsPresent():
		m.PrimaryAction = &PrimaryAction{Label: "Start Session", Href: StartSessionPath}
		m.User = summarize(st)
		m.ShowSignOut = true
	case st.IsAbsent():
		m.PrimaryAction = &PrimaryAction{Label: "Try it free", Href: StartSessionPath}
		m.ShowSignIn = true
		m.AuthModalOpen = v.authModalOpen
	default:
		m.Loading = true
	}
	return m
}

func (v *LandingView) Destroy() {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return
	}
	v.destroyed = true
	unsubscribe := v.unsubscribe
	v.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}
