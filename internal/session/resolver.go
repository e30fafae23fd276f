package session

import (
	"context"
	"errors"
	"log/slog"

	domainauth "github.com/target/mindful-ui/internal/domain/auth"
	"github.com/target/mindful-ui/internal/service"
	"golang.org/x/sync/singleflight"
)

// SessionGetter loads a persisted session by ID.
type SessionGetter interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// Resolver implements Lookup on top of the auth service. Concurrent lookups
// for the same ID, as happen when a page and its fragments load together,
// share a single backend call.
type Resolver struct {
	sessions SessionGetter
	group    singleflight.Group
	logger   *slog.Logger
}

// NewResolver returns a Resolver. A nil getter resolves everything as absent.
func NewResolver(sessions SessionGetter, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{sessions: sessions, logger: logger}
}

// Lookup returns Present for a live session and Absent otherwise.
func (r *Resolver) Lookup(ctx context.Context, sessionID string) domainauth.SessionState {
	if sessionID == "" || r.sessions == nil {
		return domainauth.Absent()
	}

	v, err, shared := r.group.Do(sessionID, func() (any, error) {
		return r.sessions.GetSession(ctx, sessionID)
	})
	if err != nil {
		level := slog.LevelInfo
		if errors.Is(err, service.ErrSessionExpired) {
			level = slog.LevelDebug
		}
		r.logger.Log(ctx, level, "session lookup treated as signed out", "error", err, "shared", shared)
		return domainauth.Absent()
	}

	sess, ok := v.(*domainauth.Session)
	if !ok || sess == nil {
		return domainauth.Absent()
	}
	return domainauth.Present(*sess)
}
