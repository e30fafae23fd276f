package httpx

import (
	"net/http"

	"github.com/target/mindful-ui/internal/ui"
)

// landingAction mirrors headerAction for the landing hero. Views mounted
// without a landing component answer 404.
func (h *UIHandlers) landingAction(act func(r *http.Request, view *ui.View)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := h.lookupView(w, r)
		if !ok {
			return
		}
		if view.Landing == nil {
			http.NotFound(w, r)
			return
		}
		if act != nil {
			act(r, view)
		}
		h.writeComponents(w, r, view, fragmentLanding, fragmentHeader)
	}
}

// LandingOpenAuthModal handles POST /ui/{view}/landing/auth-modal/open.
func (h *UIHandlers) LandingOpenAuthModal(w http.ResponseWriter, r *http.Request) {
	h.landingAction(func(_ *http.Request, v *ui.View) { v.Landing.OpenAuthModal() })(w, r)
}

// LandingCloseAuthModal handles POST /ui/{view}/landing/auth-modal/close.
func (h *UIHandlers) LandingCloseAuthModal(w http.ResponseWriter, r *http.Request) {
	h.landingAction(func(_ *http.Request, v *ui.View) { v.Landing.CloseAuthModal() })(w, r)
}

// LandingSignOut handles POST /ui/{view}/landing/sign-out.
func (h *UIHandlers) LandingSignOut(w http.ResponseWriter, r *http.Request) {
	h.landingAction(func(r *http.Request, v *ui.View) { v.Landing.SignOut(r.Context()) })(w, r)
}

// LandingPoll handles GET /ui/{view}/landing, polled while the session is pending.
func (h *UIHandlers) LandingPoll(w http.ResponseWriter, r *http.Request) {
	view, ok := h.lookupView(w, r)
	if !ok {
		return
	}
	if view.Landing == nil {
		http.NotFound(w, r)
		return
	}
	h.writeComponents(w, r, view, fragmentLanding)
}
