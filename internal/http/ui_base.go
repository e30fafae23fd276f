package httpx

import (
	"bytes"
	"context"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/target/mindful-ui/internal/http/ui/viewmodel"
	"github.com/target/mindful-ui/internal/session"
	"github.com/target/mindful-ui/internal/ui"
)

// UIHandlers serves browser-facing routes and the component endpoints.
type UIHandlers struct {
	T        *TemplateRenderer
	Registry *ui.Registry
	// Sessions resolves the session cookie for each mounted view.
	Sessions session.Lookup
	// SignOuter ends sessions on behalf of the components.
	SignOuter session.SignOuter
	Flash     *FlashCookies
	Nav       []ui.NavItem

	Breakpoint    int
	ToastDuration time.Duration
	// ResolveWait bounds how long a page render waits for the session.
	ResolveWait  time.Duration
	CookieDomain string
	// LogoutURL is the identity provider's end-session endpoint, if any.
	LogoutURL string
	IsDev     bool
	Logger    *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
	// Landing mounts the landing component alongside the header.
	Landing bool
}

// ComponentData is the input of the header and landing templates. The same
// value renders both full pages and fragment responses.
type ComponentData struct {
	ViewID    string
	LoginURL  string
	CSRFToken string
	Header    ui.HeaderModel
	Landing   *ui.LandingModel
	// OOB marks a fragment appended for an out-of-band swap.
	OOB bool
}

// PageData is the input of the layout template.
type PageData struct {
	viewmodel.Layout
	Component     ComponentData
	Content       any
	InitialToasts []Toast
}

// mountView creates the per-view session store and components, then waits
// briefly for the session so most first renders skip the pending state.
func (h *UIHandlers) mountView(r *http.Request, meta PageMeta) (*ui.View, error) {
	store := session.NewStore(session.Options{SignOuter: h.SignOuter, Logger: h.logger()})
	resolved := store.Resolve(r.Context(), h.Sessions, sessionIDFromRequest(r))

	view, err := h.Registry.Mount(ui.ViewOptions{
		Session:       store,
		Theme:         themeFromRequest(r),
		Path:          r.URL.Path,
		Landing:       meta.Landing,
		Nav:           h.Nav,
		ToastDuration: h.ToastDuration,
		Logger:        h.logger(),
		OnDestroy:     store.Close,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	waitResolved(r.Context(), resolved, h.ResolveWait)
	return view, nil
}

func waitResolved(ctx context.Context, done <-chan struct{}, wait time.Duration) {
	if wait <= 0 {
		return
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	case <-ctx.Done():
	}
}

// componentData renders the view's components into template input.
func (h *UIHandlers) componentData(r *http.Request, view *ui.View) ComponentData {
	data := ComponentData{
		ViewID:    view.ID,
		LoginURL:  loginURL(view.Location.ActiveRoute()),
		CSRFToken: GetCSRFToken(r),
		Header:    view.Header.Render(),
	}
	if view.Landing != nil {
		lm := view.Landing.Render()
		data.Landing = &lm
	}
	return data
}

func loginURL(returnTo string) string {
	return "/auth/login?redirect_uri=" + url.QueryEscape(safeRedirectPath(returnTo))
}

// buildLayout constructs shared layout metadata from the request and the view.
func buildLayout(r *http.Request, view *ui.View, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		ViewID:      view.ID,
		Theme:       string(view.Theme.Current()),
	}

	if st := view.Session.Snapshot(); st.IsPresent() {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{
			Name:     st.Session.Label(),
			Email:    st.Session.Email,
			PhotoURL: st.Session.PhotoURL,
			Role:     string(st.Session.Role),
		}
	}
	return layout
}

// PageSpec defines metadata and an optional builder for page-specific content.
type PageSpec struct {
	Meta    PageMeta
	Content func(r *http.Request, view *ui.View) any
}

// Page mounts a view and renders the full layout around the page content.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	view, err := h.mountView(r, spec.Meta)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "mount view failed", "error", err, "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.syncSessionCookie(w, r, view)

	data := PageData{
		Layout:        buildLayout(r, view, spec.Meta),
		Component:     h.componentData(r, view),
		InitialToasts: append(h.Flash.Pop(w, r), ToastsFrom(view.Outbox.Drain())...),
	}
	if spec.Content != nil {
		data.Content = spec.Content(r, view)
	}

	if err := h.T.RenderFull(w, r, data); err != nil {
		h.Registry.Unmount(view.ID)
		h.logAndRenderTemplateError(w, r, err, "full page render")
	}
}

// syncSessionCookie drops a session cookie the view has found to be dead.
func (h *UIHandlers) syncSessionCookie(w http.ResponseWriter, r *http.Request, view *ui.View) {
	if sessionIDFromRequest(r) == "" {
		return
	}
	if view.Session.Snapshot().IsAbsent() {
		clearCookie(w, r, SessionCookieName, h.CookieDomain)
	}
}

// lookupView returns the view named in the path. Unknown or expired views
// answer 410 with a refresh so the browser mounts a fresh page.
func (h *UIHandlers) lookupView(w http.ResponseWriter, r *http.Request) (*ui.View, bool) {
	view, ok := h.Registry.Get(r.PathValue("view"))
	if !ok {
		HTMX(w).Gone()
		return nil, false
	}
	if path := HXCurrentPath(r); path != "" {
		view.Location.Set(path)
	}
	return view, true
}

// fragment names a component template rendered into a response.
type fragment string

const (
	fragmentHeader  fragment = tmplHeader
	fragmentLanding fragment = tmplLanding
)

// writeComponents renders primary plus any out-of-band fragments for the
// other components of the view, after flushing pending toasts into headers.
func (h *UIHandlers) writeComponents(w http.ResponseWriter, r *http.Request, view *ui.View, primary fragment, oob ...fragment) {
	h.syncSessionCookie(w, r, view)
	flushToasts(w, view.Outbox)

	data := h.componentData(r, view)
	var buf bytes.Buffer
	if err := h.T.ExecuteTo(&buf, string(primary), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "component render")
		return
	}
	for _, name := range oob {
		if name == fragmentLanding && data.Landing == nil {
			continue
		}
		extra := data
		extra.OOB = true
		if err := h.T.ExecuteTo(&buf, string(name), extra); err != nil {
			h.logAndRenderTemplateError(w, r, err, "out-of-band render")
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().ErrorContext(r.Context(), "failed to write component response", "error", err)
	}
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		body := `<div class="dev-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
