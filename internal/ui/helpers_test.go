package ui_test

import (
	"context"
	"sync"
	"testing"
	"time"

	domainauth "github.com/target/mindful-ui/internal/domain/auth"
	"github.com/target/mindful-ui/internal/session"
	"github.com/target/mindful-ui/internal/ui"
)

type signOutBackend struct {
	mu    sync.Mutex
	calls int
	err   error
	gate  chan struct{}
}

func (b *signOutBackend) Logout(context.Context, string) error {
	b.mu.Lock()
	b.calls++
	gate := b.gate
	b.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return b.err
}

func (b *signOutBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

type recordingObserver struct {
	mu       sync.Mutex
	signOuts []string
	mounted  int
	removed  []string
}

func (o *recordingObserver) SignOut(component string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	o.signOuts = append(o.signOuts, component+":"+outcome)
}

func (o *recordingObserver) ViewMounted() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mounted++
}

func (o *recordingObserver) ViewRemoved(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.removed = append(o.removed, reason)
}

func testSession() domainauth.Session {
	return domainauth.Session{
		ID:          "sess-1",
		UserID:      "user-1",
		DisplayName: "Ana Lima",
		Email:       "ana@example.com",
		PhotoURL:    "https://example.com/ana.png",
		Role:        domainauth.RoleUser,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func newStore(t *testing.T, st domainauth.SessionState, backend session.SignOuter) *session.Store {
	t.Helper()
	s := session.NewStore(session.Options{SignOuter: backend})
	if !st.IsPending() {
		s.Publish(st)
	}
	t.Cleanup(s.Close)
	return s
}

type headerFixture struct {
	store   *session.Store
	backend *signOutBackend
	outbox  *ui.Outbox
	theme   *ui.ThemeState
	route   *ui.Location
	header  *ui.HeaderNav
}

func newHeader(t *testing.T, st domainauth.SessionState) *headerFixture {
	t.Helper()
	f := &headerFixture{
		backend: &signOutBackend{},
		outbox:  &ui.Outbox{},
		theme:   ui.NewThemeState(ui.ThemeLight),
		route:   ui.NewLocation("/"),
	}
	f.store = newStore(t, st, f.backend)
	h, err := ui.NewHeaderNav(ui.HeaderOptions{
		Session: f.store,
		Theme:   f.theme,
		Route:   f.route,
		Sink:    f.outbox,
	})
	if err != nil {
		t.Fatalf("new header: %v", err)
	}
	t.Cleanup(h.Destroy)
	f.header = h
	return f
}
