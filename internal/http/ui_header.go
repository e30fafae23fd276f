package httpx

import (
	"net/http"

	"github.com/target/mindful-ui/internal/ui"
)

const themeChangedEvent = "theme:changed"

// headerAction runs a header transition and answers with the re-rendered
// header plus the landing hero out of band, since both read the same session.
func (h *UIHandlers) headerAction(act func(r *http.Request, view *ui.View)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := h.lookupView(w, r)
		if !ok {
			return
		}
		act(r, view)
		h.writeComponents(w, r, view, fragmentHeader, fragmentLanding)
	}
}

// HeaderToggleMenu handles POST /ui/{view}/header/menu.
func (h *UIHandlers) HeaderToggleMenu(w http.ResponseWriter, r *http.Request) {
	h.headerAction(func(_ *http.Request, v *ui.View) { v.Header.ToggleMobileMenu() })(w, r)
}

// HeaderOpenAuthModal handles POST /ui/{view}/header/auth-modal/open.
func (h *UIHandlers) HeaderOpenAuthModal(w http.ResponseWriter, r *http.Request) {
	h.headerAction(func(_ *http.Request, v *ui.View) { v.Header.OpenAuthModal() })(w, r)
}

// HeaderCloseAuthModal handles POST /ui/{view}/header/auth-modal/close.
func (h *UIHandlers) HeaderCloseAuthModal(w http.ResponseWriter, r *http.Request) {
	h.headerAction(func(_ *http.Request, v *ui.View) { v.Header.CloseAuthModal() })(w, r)
}

// HeaderCloseDropdown handles POST /ui/{view}/header/dropdown/close.
func (h *UIHandlers) HeaderCloseDropdown(w http.ResponseWriter, r *http.Request) {
	h.headerAction(func(_ *http.Request, v *ui.View) { v.Header.CloseDropdown() })(w, r)
}

// HeaderAvatar handles POST /ui/{view}/header/avatar. The viewport width is
// measured by the client at click time and posted as viewport_width.
func (h *UIHandlers) HeaderAvatar(w http.ResponseWriter, r *http.Request) {
	h.headerAction(func(r *http.Request, v *ui.View) {
		vp := ui.ParseViewport(r.FormValue(ViewportWidthField), h.Breakpoint)
		v.Header.ActivateAvatar(r.Context(), vp)
	})(w, r)
}

// HeaderLogout handles POST /ui/{view}/header/logout. The mobile menu's
// sign-out button posts close_menu so the menu closes whatever the outcome.
func (h *UIHandlers) HeaderLogout(w http.ResponseWriter, r *http.Request) {
	h.headerAction(func(r *http.Request, v *ui.View) {
		v.Header.Logout(r.Context())
		if r.FormValue(CloseMenuField) == "true" {
			v.Header.CloseMobileMenu()
		}
	})(w, r)
}

// HeaderToggleTheme handles POST /ui/{view}/header/theme.
func (h *UIHandlers) HeaderToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.headerAction(func(r *http.Request, v *ui.View) {
		t := v.Header.ToggleTheme()
		writeThemeCookie(w, r, t, h.CookieDomain)
		SetHXTrigger(w, themeChangedEvent, map[string]string{"theme": string(t)})
	})(w, r)
}

// HeaderPoll handles GET /ui/{view}/header, polled while the session is pending.
func (h *UIHandlers) HeaderPoll(w http.ResponseWriter, r *http.Request) {
	view, ok := h.lookupView(w, r)
	if !ok {
		return
	}
	h.writeComponents(w, r, view, fragmentHeader)
}
