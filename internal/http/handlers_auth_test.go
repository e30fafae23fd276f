package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mindful-ui/internal/service"
)

func newAuthHandlers(t *testing.T, auth *fakeAuth) *AuthHandlers {
	t.Helper()
	return &AuthHandlers{Svc: auth, Flash: newTestFlash(t), Logger: discardLogger()}
}

func TestAuthHandlers_Login(t *testing.T) {
	auth := newFakeAuth()
	var gotRedirect string
	auth.BeginLoginFunc = func(_ context.Context, redirectURL string) (*service.BeginLoginResult, error) {
		gotRedirect = redirectURL
		return &service.BeginLoginResult{AuthURL: "https://idp.example.com/auth?x=1", State: "st", Nonce: "nc"}, nil
	}
	h := newAuthHandlers(t, auth)

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https://evil.example", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://idp.example.com/auth?x=1", w.Header().Get("Location"))
	assert.Equal(t, "/", gotRedirect)
	require.NotNil(t, responseCookie(w, oauthStateCookie))
	assert.Equal(t, "st", responseCookie(w, oauthStateCookie).Value)
	assert.Equal(t, "nc", responseCookie(w, oauthNonceCookie).Value)
	assert.Equal(t, "/", responseCookie(w, postLoginCookie).Value)
}

func TestAuthHandlers_LoginFailure(t *testing.T) {
	auth := newFakeAuth()
	auth.BeginLoginFunc = func(context.Context, string) (*service.BeginLoginResult, error) {
		return nil, errors.New("provider down")
	}
	w := httptest.NewRecorder()
	newAuthHandlers(t, auth).Login(w, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "provider down")
}

func TestAuthHandlers_Callback(t *testing.T) {
	sess := testSession()
	auth := newFakeAuth()
	auth.CompleteLoginFunc = func(_ context.Context, in service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
		if in.Code != "code-1" || in.Nonce != "nc" {
			return nil, errors.New("unexpected input")
		}
		return &service.CompleteLoginResult{Session: sess}, nil
	}
	h := newAuthHandlers(t, auth)

	t.Run("state mismatch", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/auth/callback?code=code-1&state=st", nil)
		r.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "other"})
		w := httptest.NewRecorder()
		h.Callback(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_state")
	})

	t.Run("missing code", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Callback(w, httptest.NewRequest(http.MethodGet, "/auth/callback?state=st", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/auth/callback?code=code-1&state=st", nil)
		r.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "st"})
		r.AddCookie(&http.Cookie{Name: oauthNonceCookie, Value: "nc"})
		r.AddCookie(&http.Cookie{Name: postLoginCookie, Value: "/breathe"})
		w := httptest.NewRecorder()
		h.Callback(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/breathe", w.Header().Get("Location"))
		c := responseCookie(w, SessionCookieName)
		require.NotNil(t, c)
		assert.Equal(t, sess.ID, c.Value)
		assert.True(t, c.HttpOnly)
		assert.Negative(t, responseCookie(w, oauthStateCookie).MaxAge)
	})
}

func logoutRequest(sessionID, redirect string) *http.Request {
	form := url.Values{"redirect_uri": {redirect}}
	r := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sessionID != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	return r
}

func flashFrom(t *testing.T, h *AuthHandlers, w *httptest.ResponseRecorder) []Toast {
	t.Helper()
	c := responseCookie(w, FlashCookieName)
	require.NotNil(t, c, "flash cookie")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	return h.Flash.Pop(httptest.NewRecorder(), r)
}

func TestAuthHandlers_Logout(t *testing.T) {
	t.Run("success clears session and flashes info", func(t *testing.T) {
		auth := newFakeAuth(testSession())
		h := newAuthHandlers(t, auth)
		w := httptest.NewRecorder()
		h.Logout(w, logoutRequest("sess-1", "/meditations"))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/meditations", w.Header().Get("Location"))
		assert.Equal(t, []string{"sess-1"}, auth.Logouts())
		require.NotNil(t, responseCookie(w, SessionCookieName))
		assert.Negative(t, responseCookie(w, SessionCookieName).MaxAge)

		toasts := flashFrom(t, h, w)
		require.Len(t, toasts, 1)
		assert.Equal(t, "info", toasts[0].Kind)
		assert.Equal(t, int64(3000), toasts[0].DurationMs)
	})

	t.Run("failure keeps session and flashes error", func(t *testing.T) {
		auth := newFakeAuth(testSession())
		auth.logoutErr = errors.New("store unavailable")
		h := newAuthHandlers(t, auth)
		w := httptest.NewRecorder()
		h.Logout(w, logoutRequest("sess-1", "https://evil.example"))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Nil(t, responseCookie(w, SessionCookieName))

		toasts := flashFrom(t, h, w)
		require.Len(t, toasts, 1)
		assert.Equal(t, "error", toasts[0].Kind)
		assert.NotContains(t, toasts[0].Description, "store unavailable")
	})
}

func TestAuthHandlers_Status(t *testing.T) {
	h := newAuthHandlers(t, newFakeAuth(testSession()))

	t.Run("signed in", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
		w := httptest.NewRecorder()
		h.Status(w, r)

		var body struct {
			Authenticated bool           `json:"authenticated"`
			User          map[string]any `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Authenticated)
		assert.Equal(t, "Ana Lima", body.User["display_name"])
	})

	t.Run("unknown session clears cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "gone"})
		w := httptest.NewRecorder()
		h.Status(w, r)
		assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
		assert.NotNil(t, responseCookie(w, SessionCookieName))
	})
}
