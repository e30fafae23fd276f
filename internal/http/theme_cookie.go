package httpx

import (
	"net/http"

	"github.com/target/mindful-ui/internal/ui"
)

const themeCookieMaxAge = 365 * 24 * 60 * 60

// themeFromRequest returns the theme stored in the cookie, or light.
func themeFromRequest(r *http.Request) ui.Theme {
	c, err := r.Cookie(ThemeCookieName)
	if err != nil {
		return ui.ThemeLight
	}
	if t, ok := ui.ParseTheme(c.Value); ok {
		return t
	}
	return ui.ThemeLight
}

// writeThemeCookie persists the theme; scripts read it before first paint.
func writeThemeCookie(w http.ResponseWriter, r *http.Request, t ui.Theme, domain string) {
	setCookie(w, r, cookieSpec{
		Name:   ThemeCookieName,
		Value:  string(t),
		Domain: domain,
		MaxAge: themeCookieMaxAge,
	})
}
