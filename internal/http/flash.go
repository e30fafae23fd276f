package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const defaultFlashMaxAge = time.Minute

// FlashCookies carries toasts across full-page redirects, where there is no
// htmx response to attach an Hx-Trigger header to. The value is signed and,
// when a block key is configured, encrypted.
type FlashCookies struct {
	codec  *securecookie.SecureCookie
	maxAge time.Duration
	domain string
}

// FlashOptions configures FlashCookies.
type FlashOptions struct {
	HashKey  []byte
	BlockKey []byte
	MaxAge   time.Duration
	Domain   string
}

// NewFlashCookies builds a flash codec. A missing hash key is replaced by a
// random one, so flashes do not survive a restart.
func NewFlashCookies(opts FlashOptions) (*FlashCookies, error) {
	hashKey := opts.HashKey
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
		if hashKey == nil {
			return nil, errors.New("generate flash hash key")
		}
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = defaultFlashMaxAge
	}

	codec := securecookie.New(hashKey, opts.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(maxAge.Seconds()))

	return &FlashCookies{codec: codec, maxAge: maxAge, domain: opts.Domain}, nil
}

// Set stores toasts for the next page load. Empty input is a no-op.
func (f *FlashCookies) Set(w http.ResponseWriter, r *http.Request, toasts []Toast) error {
	if f == nil || len(toasts) == 0 {
		return nil
	}
	encoded, err := f.codec.Encode(FlashCookieName, toasts)
	if err != nil {
		return err
	}
	setCookie(w, r, cookieSpec{
		Name:     FlashCookieName,
		Value:    encoded,
		Domain:   f.domain,
		MaxAge:   int(f.maxAge.Seconds()),
		HTTPOnly: true,
	})
	return nil
}

// Pop returns pending toasts and clears the cookie. Tampered or expired
// values are discarded.
func (f *FlashCookies) Pop(w http.ResponseWriter, r *http.Request) []Toast {
	if f == nil {
		return nil
	}
	c, err := r.Cookie(FlashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	clearCookie(w, r, FlashCookieName, f.domain)

	var toasts []Toast
	if err := f.codec.Decode(FlashCookieName, c.Value, &toasts); err != nil {
		return nil
	}
	return toasts
}
