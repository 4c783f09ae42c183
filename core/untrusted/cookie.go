// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"
	"net/url"
	"time"

	"codeberg.org/dialectfe/dialectfe/core/cookie"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// CookieSameSite is Lax so that a session survives arriving from a link on
// another site.
const CookieSameSite = http.SameSiteLaxMode

// cookieLifetime is how long a stored preference or session is kept.
const cookieLifetime = 30 * 24 * time.Hour

// expired is the Expires value written to delete a cookie.
var expired = time.Unix(0, 0).UTC()

// GetCookie returns the unescaped value of the named cookie, or "" when it
// is absent or malformed.
func GetCookie(r *http.Request, name cookie.CookieName) string {
	c, err := r.Cookie(string(name))
	if err != nil {
		return ""
	}

	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}

	return value
}

// SetCookie stores value under name. An empty value clears the cookie.
func SetCookie(w http.ResponseWriter, r *http.Request, name cookie.CookieName, value string) {
	if value == "" {
		ClearCookie(w, r, name)

		return
	}

	http.SetCookie(w, build(r, name, url.QueryEscape(value), time.Now().Add(cookieLifetime)))
}

// ClearCookie tells the browser to drop the named cookie.
func ClearCookie(w http.ResponseWriter, r *http.Request, name cookie.CookieName) {
	c := build(r, name, "", expired)
	c.MaxAge = -1

	http.SetCookie(w, c)
}

// ClearAllCookies drops every cookie DialectFE sets.
func ClearAllCookies(w http.ResponseWriter, r *http.Request) {
	for _, name := range cookie.AllCookieNames {
		ClearCookie(w, r, name)
	}
}

func build(r *http.Request, name cookie.CookieName, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     string(name),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   utils.IsConnectionSecure(r),
		HttpOnly: cookie.IsHttpOnly(name),
		SameSite: CookieSameSite,
	}
}
