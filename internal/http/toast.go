package httpx

import (
	"net/http"

	"github.com/target/mindful-ui/internal/ui"
)

// toastEvent is the client-side event app.js listens for.
const toastEvent = "showToast"

// Toast is the wire form of a ui.Notification.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	DurationMs  int64  `json:"durationMs,omitempty"`
}

// ToastsFrom converts notifications into their wire form, preserving order.
func ToastsFrom(ns []ui.Notification) []Toast {
	if len(ns) == 0 {
		return nil
	}
	out := make([]Toast, 0, len(ns))
	for _, n := range ns {
		kind := string(n.Kind)
		if kind == "" {
			kind = string(ui.KindInfo)
		}
		out = append(out, Toast{
			Title:       n.Title,
			Description: n.Description,
			Kind:        kind,
			DurationMs:  n.Duration.Milliseconds(),
		})
	}
	return out
}

// flushToasts drains the outbox into the Hx-Trigger header.
// It must run before the response status is written.
func flushToasts(w http.ResponseWriter, outbox *ui.Outbox) {
	if outbox == nil {
		return
	}
	HTMX(w).Toasts(ToastsFrom(outbox.Drain()))
}
