package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/target/mindful-ui/internal/domain/auth"
	"github.com/target/mindful-ui/internal/service"
	"github.com/target/mindful-ui/internal/ui"
)

const (
	oauthStateCookie    = "oauth_state"
	oauthNonceCookie    = "oauth_nonce"
	postLoginCookie     = "post_login_redirect"
	oauthCookieLifetime = 10 * 60
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

var _ AuthServiceInterface = (*service.AuthService)(nil)

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc           AuthServiceInterface
	CookieDomain  string
	Flash         *FlashCookies
	ToastDuration time.Duration
	Observer      ui.Observer
	Logger        *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the login initiation endpoint.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), redirectURI)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "begin login failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     errors.New("unable to start sign-in"),
		})
		return
	}

	for name, value := range map[string]string{
		oauthStateCookie: result.State,
		oauthNonceCookie: result.Nonce,
		postLoginCookie:  redirectURI,
	} {
		setCookie(w, r, cookieSpec{
			Name:     name,
			Value:    value,
			Domain:   h.CookieDomain,
			MaxAge:   oauthCookieLifetime,
			HTTPOnly: true,
		})
	}

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback handles the OAuth callback endpoint.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_code",
			Err:     errors.New("authorization code is required"),
		})
		return
	}
	if state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_state",
			Err:     errors.New("state parameter is required"),
		})
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}
	nonceCookie, err := r.Cookie(oauthNonceCookie)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_nonce",
			Err:     errors.New("missing nonce parameter"),
		})
		return
	}

	result, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		h.logger().ErrorContext(r.Context(), "complete login failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_completion_failed",
			Err:     errors.New("unable to complete sign-in"),
		})
		return
	}

	h.setSessionCookie(w, r, result.Session)
	clearCookie(w, r, oauthStateCookie, h.CookieDomain)
	clearCookie(w, r, oauthNonceCookie, h.CookieDomain)

	h.logger().InfoContext(r.Context(), "user signed in", "user_id", result.Session.UserID)
	http.Redirect(w, r, h.popPostLoginRedirect(w, r), http.StatusFound)
}

// Logout is the plain form fallback for signing out without scripts.
// POST /auth/logout.
//
// The outcome is reported like a component sign-out and the toast rides a
// flash cookie to the next page. On failure the session cookie is kept.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromRequest(r)
	redirectURI := safeRedirectPath(r.FormValue("redirect_uri"))

	var outbox ui.Outbox
	reporter := ui.NewSignOutReporter(ui.ComponentForm, &outbox, h.ToastDuration, h.logger(), h.Observer)

	var err error
	if id != "" {
		err = h.Svc.Logout(r.Context(), id)
	}
	reporter.Report(r.Context(), err)
	if err == nil {
		clearCookie(w, r, SessionCookieName, h.CookieDomain)
	}

	if flashErr := h.Flash.Set(w, r, ToastsFrom(outbox.Drain())); flashErr != nil {
		h.logger().WarnContext(r.Context(), "flash cookie not set", "error", flashErr)
	}
	http.Redirect(w, r, redirectURI, http.StatusSeeOther)
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromRequest(r)
	if id == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), id)
	if err != nil {
		clearCookie(w, r, SessionCookieName, h.CookieDomain)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":           session.UserID,
			"display_name": session.DisplayName,
			"email":        session.Email,
			"photo_url":    session.PhotoURL,
			"role":         session.Role,
		},
		"expires_at": session.ExpiresAt,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	setCookie(w, r, cookieSpec{
		Name:     SessionCookieName,
		Value:    s.ID,
		Domain:   h.CookieDomain,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HTTPOnly: true,
	})
}

// popPostLoginRedirect returns the post-login redirect URL and clears the cookie.
func (h *AuthHandlers) popPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(postLoginCookie)
	if err != nil {
		return "/"
	}
	clearCookie(w, r, postLoginCookie, h.CookieDomain)
	return safeRedirectPath(c.Value)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
