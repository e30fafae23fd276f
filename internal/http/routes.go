package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	mindful "github.com/target/mindful-ui"
	"github.com/target/mindful-ui/internal/session"
	"github.com/target/mindful-ui/internal/ui"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     AuthServiceInterface
	Registry *ui.Registry
	// Resolver collapses concurrent lookups of one session. Built from Auth when nil.
	Resolver session.Lookup
	Flash    *FlashCookies
	Nav      []ui.NavItem

	Breakpoint    int
	ToastDuration time.Duration
	ResolveWait   time.Duration
	CookieDomain  string
	LogoutURL     string

	// Optional observability.
	Metrics     http.Handler
	HTTPMetrics RequestObserver
	UIObserver  ui.Observer
	Ready       map[string]ReadinessCheck

	Compression *CompressionConfig

	// TemplateFS overrides the template source, used by tests.
	TemplateFS fs.FS
	IsDev      bool         // Development mode flag for hot reloading, etc.
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.Ready))
	if services.Metrics != nil {
		mux.Handle("GET /metrics", services.Metrics)
	}
	mux.Handle("GET /static/", staticWithFallback(services.IsDev))

	csrf := CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})

	if services.Auth != nil {
		registerAuthRoutes(mux, &AuthHandlers{
			Svc:           services.Auth,
			CookieDomain:  services.CookieDomain,
			Flash:         services.Flash,
			ToastDuration: services.ToastDuration,
			Observer:      services.UIObserver,
			Logger:        logger,
		}, csrf)
	}

	uiHandlers := setupUIHandlers(services, logger)
	if uiHandlers != nil {
		registerUIRoutes(mux, uiHandlers, uiRouteConfig{Auth: services.Auth, CSRF: csrf})
	}

	var handler http.Handler = &notFoundHandler{mux: mux, uiHandlers: uiHandlers}
	handler = BrowserDetection()(handler)
	if services.Compression != nil {
		handler = Compression(*services.Compression)(handler)
	}
	routeOf := func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}
	if services.HTTPMetrics != nil {
		handler = Metrics(services.HTTPMetrics, routeOf)(handler)
	}
	handler = Logging(logger)(handler)
	return Recover(logger)(handler)
}

// templateFS picks the template source: an explicit override, the disk in
// dev mode for hot reloading, or the embedded copy.
func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(mindful.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

func setupUIHandlers(services RouterServices, logger *slog.Logger) *UIHandlers {
	if services.Registry == nil {
		return nil
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}

	resolver := services.Resolver
	if resolver == nil && services.Auth != nil {
		resolver = session.NewResolver(services.Auth, logger)
	}

	h := &UIHandlers{
		T:             tr,
		Registry:      services.Registry,
		Sessions:      resolver,
		Flash:         services.Flash,
		Nav:           services.Nav,
		Breakpoint:    services.Breakpoint,
		ToastDuration: services.ToastDuration,
		ResolveWait:   services.ResolveWait,
		CookieDomain:  services.CookieDomain,
		LogoutURL:     services.LogoutURL,
		IsDev:         services.IsDev,
		Logger:        logger,
	}
	if services.Auth != nil {
		h.SignOuter = services.Auth
	}
	return h
}

// staticWithFallback serves /static/* from disk in dev mode and from the
// embedded filesystem otherwise.
func staticWithFallback(isDev bool) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}
	staticSub, err := fs.Sub(mindful.StaticFS, "frontend/static")
	if err != nil {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))), true)
}

// staticWithCacheHeaders adds cache headers: short-lived in production, none in dev.
func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP dispatches to the mux and swaps its bare 404 for the error page.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" || strings.HasPrefix(r.URL.Path, "/static/") {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status == http.StatusNotFound && h.uiHandlers != nil {
		h.uiHandlers.NotFound(w, r)
		return
	}
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	_, _ = w.Write(c.buf.Bytes())
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, csrf func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.Handle("POST /auth/logout", csrf(http.HandlerFunc(h.Logout)))
	mux.HandleFunc("GET /auth/status", h.Status)
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Auth AuthServiceInterface
	CSRF func(http.Handler) http.Handler
}

// authWrap returns CSRF-only protection when auth is nil, otherwise also requires a session.
func (cfg uiRouteConfig) authWrap() func(http.Handler) http.Handler {
	if cfg.Auth == nil {
		return cfg.CSRF
	}
	requireAuth := RequireAuthBrowser(cfg.Auth)
	return func(h http.Handler) http.Handler { return cfg.CSRF(requireAuth(h)) }
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerUIPageRoutes(mux, h, cfg)
	registerUIComponentRoutes(mux, h, cfg)
	mux.Handle("GET /auth/signed-out", cfg.CSRF(http.HandlerFunc(h.SignedOut)))
}

func registerUIPageRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	public := cfg.CSRF
	mux.Handle("GET /{$}", public(http.HandlerFunc(h.Index)))
	mux.Handle("GET /breathe", public(http.HandlerFunc(h.Breathe)))
	mux.Handle("GET /meditations", public(http.HandlerFunc(h.Meditations)))
	mux.Handle("GET /community", public(http.HandlerFunc(h.Community)))
	mux.Handle("GET /dashboard", cfg.authWrap()(http.HandlerFunc(h.Dashboard)))
}

// registerUIComponentRoutes wires the per-view component endpoints.
func registerUIComponentRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	routes := map[string]http.HandlerFunc{
		"POST /ui/{view}/header/menu":             h.HeaderToggleMenu,
		"POST /ui/{view}/header/auth-modal/open":  h.HeaderOpenAuthModal,
		"POST /ui/{view}/header/auth-modal/close": h.HeaderCloseAuthModal,
		"POST /ui/{view}/header/avatar":           h.HeaderAvatar,
		"POST /ui/{view}/header/dropdown/close":   h.HeaderCloseDropdown,
		"POST /ui/{view}/header/logout":           h.HeaderLogout,
		"POST /ui/{view}/header/theme":            h.HeaderToggleTheme,
		"GET /ui/{view}/header":                   h.HeaderPoll,

		"POST /ui/{view}/landing/auth-modal/open":  h.LandingOpenAuthModal,
		"POST /ui/{view}/landing/auth-modal/close": h.LandingCloseAuthModal,
		"POST /ui/{view}/landing/sign-out":         h.LandingSignOut,
		"GET /ui/{view}/landing":                   h.LandingPoll,

		"POST /ui/{view}/unmount": h.Unmount,
	}
	for pattern, fn := range routes {
		mux.Handle(pattern, cfg.CSRF(fn))
	}
}
