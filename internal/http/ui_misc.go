package httpx

import (
	"bytes"
	"errors"
	"net/http"
)

// SignedOut renders a simple signed-out page with a Sign In button.
func (h *UIHandlers) SignedOut(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	data := map[string]any{
		"Title":       "Signed out - Mindful",
		"RedirectURI": redirect,
		"LoginURL":    loginURL(redirect),
		"LogoutURL":   h.LogoutURL,
		"CSRFToken":   GetCSRFToken(r),
	}
	if h.T == nil {
		http.Redirect(w, r, loginURL(redirect), http.StatusSeeOther)
		return
	}

	var buf bytes.Buffer
	if err := h.T.ExecuteTo(&buf, "signed-out-page", data); err != nil {
		http.Redirect(w, r, loginURL(redirect), http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().Error("failed to write signed-out response", "error", err)
	}
}

// Unmount handles POST /ui/{view}/unmount, sent by the page on unload.
// Unknown views are ignored.
func (h *UIHandlers) Unmount(w http.ResponseWriter, r *http.Request) {
	h.Registry.Unmount(r.PathValue("view"))
	w.WriteHeader(http.StatusNoContent)
}

// NotFound handles 404 errors.
// For browser requests, it renders an HTML error page.
// For API requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("not found"),
		})
		return
	}

	data := map[string]any{
		"Title":       "Page Not Found - Mindful",
		"Code":        "404",
		"Message":     "The page you're looking for doesn't exist.",
		"RedirectURI": r.URL.RequestURI(),
		"HomeURL":     "/",
		"LoginURL":    loginURL(r.URL.RequestURI()),
	}

	if h.T == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := h.T.ExecuteTo(&buf, "error-layout", data); err != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().Error("failed to write not found response", "error", err)
	}
}
