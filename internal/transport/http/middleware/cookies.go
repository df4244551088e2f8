package middleware

import (
	"net/http"
	"time"
)

// Имена сессионных cookie.
const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// CookieOptions — общие атрибуты сессионных cookie.
// SameSite=None: фронтенд живёт на другом origin, поэтому cookie
// должны уходить в кросс-сайтовых запросах (при Secure).
type CookieOptions struct {
	Path   string
	Secure bool
}

// SetTokenCookie выставляет HttpOnly cookie с токеном.
func SetTokenCookie(w http.ResponseWriter, opts CookieOptions, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearTokenCookie немедленно гасит cookie с токеном.
func ClearTokenCookie(w http.ResponseWriter, opts CookieOptions, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}

// cookieValue возвращает значение cookie или пустую строку.
func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
