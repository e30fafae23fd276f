package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	domainauth "github.com/target/mindful-ui/internal/domain/auth"
	"github.com/target/mindful-ui/internal/service"
	"github.com/target/mindful-ui/internal/ui"
	"golang.org/x/net/html"
)

var errSessionNotFound = errors.New("session not found")

// fakeAuth is an in-memory AuthServiceInterface.
type fakeAuth struct {
	mu        sync.Mutex
	sessions  map[string]domainauth.Session
	logoutErr error
	logouts   []string

	BeginLoginFunc    func(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLoginFunc func(ctx context.Context, in service.CompleteLoginInput) (*service.CompleteLoginResult, error)
}

func newFakeAuth(sessions ...domainauth.Session) *fakeAuth {
	f := &fakeAuth{sessions: map[string]domainauth.Session{}}
	for _, s := range sessions {
		f.sessions[s.ID] = s
	}
	return f
}

func (f *fakeAuth) BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error) {
	if f.BeginLoginFunc != nil {
		return f.BeginLoginFunc(ctx, redirectURL)
	}
	return &service.BeginLoginResult{AuthURL: "https://idp.example.com/auth", State: "state-1", Nonce: "nonce-1"}, nil
}

func (f *fakeAuth) CompleteLogin(ctx context.Context, in service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
	if f.CompleteLoginFunc != nil {
		return f.CompleteLoginFunc(ctx, in)
	}
	return nil, errors.New("not configured")
}

func (f *fakeAuth) GetSession(_ context.Context, id string) (*domainauth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	return &s, nil
}

func (f *fakeAuth) Logout(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts = append(f.logouts, id)
	if f.logoutErr != nil {
		return f.logoutErr
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeAuth) Logouts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.logouts...)
}

func testSession() domainauth.Session {
	return domainauth.Session{
		ID:          "sess-1",
		UserID:      "user-1",
		DisplayName: "Ana Lima",
		Email:       "ana@example.com",
		Role:        domainauth.RoleUser,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testApp drives the full router the way a browser with htmx would.
type testApp struct {
	t        *testing.T
	handler  http.Handler
	auth     *fakeAuth
	registry *ui.Registry
	flash    *FlashCookies
}

func newTestApp(t *testing.T, auth *fakeAuth) *testApp {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); err != nil {
		t.Skipf("templates not available: %v", err)
	}
	registry := ui.NewRegistry(ui.RegistryOptions{Logger: discardLogger()})
	t.Cleanup(registry.Close)

	flash, err := NewFlashCookies(FlashOptions{})
	require.NoError(t, err)

	handler := NewRouter(RouterServices{
		Auth:          auth,
		Registry:      registry,
		Flash:         flash,
		Nav:           ui.DefaultNavItems(),
		Breakpoint:    ui.DefaultNarrowBreakpoint,
		ToastDuration: 3 * time.Second,
		ResolveWait:   2 * time.Second,
		TemplateFS:    os.DirFS(TemplatePathFromTest),
		Logger:        discardLogger(),
	})
	return &testApp{t: t, handler: handler, auth: auth, registry: registry, flash: flash}
}

// page is a mounted page as seen by the browser.
type page struct {
	ViewID  string
	CSRF    string
	Session string
	Body    string
	Code    int
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Header.Set("Accept", "text/html")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func (a *testApp) open(path, sessionID string) page {
	a.t.Helper()
	var cookies []*http.Cookie
	if sessionID != "" {
		cookies = append(cookies, &http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	w := a.get(path, cookies...)
	p := page{Session: sessionID, Body: w.Body.String(), Code: w.Code}
	if c := responseCookie(w, DefaultCSRFCookieName); c != nil {
		p.CSRF = c.Value
	}
	doc := parseHTML(a.t, p.Body)
	if body := findFirst(doc, func(n *html.Node) bool { return n.Data == "body" }); body != nil {
		p.ViewID = attr(body, "data-view-id")
	}
	return p
}

func (a *testApp) post(p page, path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Hx-Request", "true")
	r.Header.Set(DefaultCSRFHeaderName, p.CSRF)
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: p.CSRF})
	if p.Session != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: p.Session})
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if all := findAll(n, match); len(all) > 0 {
		return all[0]
	}
	return nil
}

func byRole(role string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, "data-role") == role }
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, "id") == id }
}

// countRole counts elements with the given data-role inside the element with id scope, or the whole document.
func countRole(t *testing.T, body, scope, role string) int {
	t.Helper()
	root := parseHTML(t, body)
	if scope != "" {
		root = findFirst(root, byID(scope))
		if root == nil {
			return 0
		}
	}
	return len(findAll(root, byRole(role)))
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
