package security

import (
	"net/http"
	"time"
)

const (
	AccessCookieName  = "authToken"
	RefreshCookieName = "refreshToken"
)

func setCookie(w http.ResponseWriter, name, value string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure, // prod=true, dev=false
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

// SetAuthCookies writes both tokens with lifetimes matching their TTLs.
func SetAuthCookies(w http.ResponseWriter, access string, accessTTL time.Duration, refresh string, refreshTTL time.Duration, secure bool) {
	setCookie(w, AccessCookieName, access, int(accessTTL.Seconds()), secure)
	setCookie(w, RefreshCookieName, refresh, int(refreshTTL.Seconds()), secure)
}

func ClearAuthCookies(w http.ResponseWriter, secure bool) {
	setCookie(w, AccessCookieName, "", -1, secure)
	setCookie(w, RefreshCookieName, "", -1, secure)
}

func ReadAccessToken(r *http.Request) string {
	c, err := r.Cookie(AccessCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func ReadRefreshToken(r *http.Request) string {
	c, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
