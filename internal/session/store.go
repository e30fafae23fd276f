// Package session owns the per-view session value: the single place the UI's
// view of the signed-in user is written, with subscribe/notify for components.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/target/mindful-ui/internal/domain/auth"
	"golang.org/x/sync/singleflight"
)

// resolveTimeout bounds a background session lookup started by Resolve.
const resolveTimeout = 5 * time.Second

var (
	// ErrSignOutFailed wraps any failure to end the current session.
	ErrSignOutFailed = errors.New("sign out failed")
	// ErrNotSignedIn is returned by RequestSignOut when no session is present.
	ErrNotSignedIn = errors.New("no session to sign out")
)

// SignOuter ends a persisted session.
type SignOuter interface {
	Logout(ctx context.Context, sessionID string) error
}

// Lookup turns a session ID into a resolved state. Implementations never
// return a pending state.
type Lookup interface {
	Lookup(ctx context.Context, sessionID string) domainauth.SessionState
}

// Options configures a Store.
type Options struct {
	SignOuter SignOuter
	Logger    *slog.Logger
}

// Store holds one session value and notifies subscribers when it changes.
// It starts pending; Resolve or Publish settle it.
type Store struct {
	notifyMu sync.Mutex // serializes publish+notify so subscribers observe changes in order

	mu      sync.Mutex
	state   domainauth.SessionState
	subs    map[uint64]func(domainauth.SessionState)
	order   []uint64
	nextSub uint64
	closed  bool

	signOut SignOuter
	flights singleflight.Group
	logger  *slog.Logger
}

// NewStore returns a pending store.
func NewStore(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state:   domainauth.Pending(),
		subs:    make(map[uint64]func(domainauth.SessionState)),
		signOut: opts.SignOuter,
		logger:  logger,
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() domainauth.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for future changes and returns its cancel func.
// fn runs on the goroutine that caused the change, without store locks held,
// and must not publish back into the store.
func (s *Store) Subscribe(fn func(domainauth.SessionState)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return func() {}
	}
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish replaces the state and notifies subscribers. It reports false when
// the store is closed.
func (s *Store) Publish(next domainauth.SessionState) bool {
	return s.publishIf(func(domainauth.SessionState) bool { return true }, next)
}

func (s *Store) publishIf(pred func(domainauth.SessionState) bool, next domainauth.SessionState) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed || !pred(s.state) {
		s.mu.Unlock()
		return false
	}
	s.state = next
	fns := make([]func(domainauth.SessionState), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return true
}

// Resolve looks up sessionID in the background and settles a pending store.
// The returned channel closes once the lookup finished. The lookup outlives
// ctx cancellation but is bounded by its own timeout.
func (s *Store) Resolve(ctx context.Context, lookup Lookup, sessionID string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
		defer cancel()

		next := domainauth.Absent()
		if lookup != nil && sessionID != "" {
			next = lookup.Lookup(lctx, sessionID)
		}
		if next.IsPending() {
			next = domainauth.Absent()
		}
		s.publishIf(func(cur domainauth.SessionState) bool { return cur.IsPending() }, next)
	}()
	return done
}

// RequestSignOut ends the present session. On success the store becomes
// absent; on failure it stays present and the error wraps ErrSignOutFailed.
// Concurrent requests for the same session share one backend call.
func (s *Store) RequestSignOut(ctx context.Context) error {
	current := s.Snapshot()
	if !current.IsPresent() {
		return ErrNotSignedIn
	}
	id := current.Session.ID

	_, err, _ := s.flights.Do(id, func() (any, error) {
		if s.signOut == nil {
			return nil, errors.New("no sign-out backend configured")
		}
		return nil, s.signOut.Logout(ctx, id)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "sign out request failed", "error", err)
		return fmt.Errorf("%w: %w", ErrSignOutFailed, err)
	}

	s.publishIf(func(cur domainauth.SessionState) bool { return cur.SessionID() == id }, domainauth.Absent())
	return nil
}

// Close drops all subscribers; later publishes are ignored.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = make(map[uint64]func(domainauth.SessionState))
	s.order = nil
}
