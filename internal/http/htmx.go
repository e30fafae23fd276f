package httpx

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// HXCurrentPath returns the path of the page that issued an htmx request, or "".
func HXCurrentPath(r *http.Request) string {
	raw := r.Header.Get("Hx-Current-Url")
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return ""
	}
	return u.Path
}

// SetHXRedirect instructs htmx to redirect the browser to the given URL.
func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set("Hx-Redirect", url) }

// SetHXRefresh forces a full page refresh when true.
func SetHXRefresh(w http.ResponseWriter, refresh bool) {
	if refresh {
		w.Header().Set("Hx-Refresh", "true")
		return
	}
	w.Header().Set("Hx-Refresh", "false")
}

// SetHXTrigger triggers a client-side event after swap with optional payload.
// If payload is nil, the value true is used for the event.
// Events already present in the Hx-Trigger header are kept.
func SetHXTrigger(w http.ResponseWriter, event string, payload any) {
	AddHXTrigger(w, map[string]any{event: payload})
}

// AddHXTrigger merges events into the Hx-Trigger response header, which htmx
// reads as a JSON object keyed by event name. Later values for the same
// event replace earlier ones.
func AddHXTrigger(w http.ResponseWriter, events map[string]any) {
	if len(events) == 0 {
		return
	}
	merged := map[string]any{}
	if existing := w.Header().Get("Hx-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			// A bare event name rather than a JSON object.
			merged = map[string]any{existing: true}
		}
	}
	for event, payload := range events {
		if payload == nil {
			payload = true
		}
		merged[event] = payload
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return
	}
	w.Header().Set("Hx-Trigger", string(b))
}
