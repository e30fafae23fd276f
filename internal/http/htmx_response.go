package httpx

import (
	"net/http"
)

// HTMXResponse provides a fluent API for building HTMX responses.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX creates a new HTMXResponse for fluent response building.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect instructs htmx to redirect the browser to the given URL.
// It sets the HX-Redirect header and returns a 204 No Content status.
// The handler should return immediately after calling this method.
func (h *HTMXResponse) Redirect(url string) {
	SetHXRedirect(h.w, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Trigger triggers a client-side event after swap with optional payload.
// This method is chainable.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}

// Toasts queues toast notifications for the client. Empty input is ignored.
// This method is chainable.
func (h *HTMXResponse) Toasts(toasts []Toast) *HTMXResponse {
	if len(toasts) > 0 {
		SetHXTrigger(h.w, toastEvent, toasts)
	}
	return h
}

// Refresh forces a full page refresh with a 204 No Content status.
func (h *HTMXResponse) Refresh() {
	SetHXRefresh(h.w, true)
	h.w.WriteHeader(http.StatusNoContent)
}

// Gone reports that the component behind the request no longer exists and
// asks htmx to reload the page so a fresh one is mounted.
func (h *HTMXResponse) Gone() {
	SetHXRefresh(h.w, true)
	h.w.WriteHeader(http.StatusGone)
}
