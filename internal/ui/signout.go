package ui

import (
	"context"
	"log/slog"
	"time"
)

const (
	ComponentHeader  = "header"
	ComponentLanding = "landing"
	// ComponentForm is the plain form POST used when scripts are unavailable.
	ComponentForm = "form"
)

const (
	signedOutTitle       = "Signed out"
	signedOutDescription = "You have been signed out successfully."
	signOutFailedTitle   = "Sign-out failed"
	signOutFailedDesc    = "There was an error signing you out. Please try again."
)

// signOutPolicy is the single outcome handler shared by every component that
// offers sign-out: a toast for the user, a log line and an observation.
type signOutPolicy struct {
	component     string
	sink          NotificationSink
	toastDuration time.Duration
	logger        *slog.Logger
	observer      Observer
}

func (p signOutPolicy) report(ctx context.Context, err error) {
	p.observer.SignOut(p.component, err)
	if err == nil {
		p.logger.InfoContext(ctx, "user signed out")
		p.sink.Emit(Notification{
			Title:       signedOutTitle,
			Description: signedOutDescription,
			Kind:        KindInfo,
			Duration:    p.toastDuration,
		})
		return
	}
	p.logger.ErrorContext(ctx, "sign out failed", "error", err)
	p.sink.Emit(Notification{
		Title:       signOutFailedTitle,
		Description: signOutFailedDesc,
		Kind:        KindError,
		Duration:    p.toastDuration,
	})
}

type discardSink struct{}

func (discardSink) Emit(Notification) {}

func newSignOutPolicy(component string, sink NotificationSink, d time.Duration, logger *slog.Logger, obs Observer) signOutPolicy {
	if sink == nil {
		sink = discardSink{}
	}
	if d <= 0 {
		d = DefaultToastDuration
	}
	if logger == nil {
		logger = slog.Default()
	}
	if obs == nil {
		obs = NopObserver{}
	}
	return signOutPolicy{component: component, sink: sink, toastDuration: d, logger: logger.With("component", component), observer: obs}
}

// DefaultToastDuration is how long a sign-out toast stays up when not configured.
const DefaultToastDuration = 3 * time.Second

// SignOutReporter applies the sign-out outcome policy for callers that are
// not components, such as the form fallback.
type SignOutReporter struct {
	policy signOutPolicy
}

// NewSignOutReporter returns a reporter that emits into sink.
func NewSignOutReporter(component string, sink NotificationSink, d time.Duration, logger *slog.Logger, obs Observer) SignOutReporter {
	return SignOutReporter{policy: newSignOutPolicy(component, sink, d, logger, obs)}
}

// Report logs the outcome of a sign-out and emits the matching toast.
func (r SignOutReporter) Report(ctx context.Context, err error) {
	r.policy.report(ctx, err)
}
