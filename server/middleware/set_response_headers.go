// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"codeberg.org/dialectfe/dialectfe/config"
)

// contentSecurityPolicy allows inline styles because role styles are
// written as style attributes.
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"base-uri 'self'",
	"form-action 'self'",
	"frame-ancestors 'none'",
	"img-src 'self' data:",
	"style-src 'self' 'unsafe-inline'",
}, "; ")

var permissionsPolicy = strings.Join([]string{
	"camera=()",
	"geolocation=()",
	"microphone=()",
	"payment=()",
	"usb=()",
	"interest-cohort=()",
}, ", ")

// securityHeaders are sent with every response. HSTS is left to the reverse
// proxy, which knows whether TLS is terminated in front of us.
var securityHeaders = map[string]string{
	"Content-Security-Policy": contentSecurityPolicy,
	"Permissions-Policy":      permissionsPolicy,
	"Referrer-Policy":         "no-referrer",
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
}

// staticMaxAge is how long browsers keep files under /css/ and robots.txt.
// Stylesheet links carry a ?v= cache buster.
var staticMaxAge = map[string]time.Duration{
	"/css/":       7 * 24 * time.Hour,
	"/robots.txt": 24 * time.Hour,
}

// cacheCleared is set once the first response in development mode has told
// the browser to drop its cache.
var cacheCleared atomic.Bool

// SetResponseHeaders writes the headers every response shares. Handlers
// override Cache-Control where they know better.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	h := w.Header()

	for k, v := range securityHeaders {
		h.Set(k, v)
	}

	h.Set("Dialectfe-Version", config.BuildVersion)
	h.Set("Dialectfe-Revision", config.Global.Build.Revision())
	h.Set("Cache-Control", cacheControlFor(r.URL.Path))

	if config.Global.Development.InDevelopment && cacheCleared.CompareAndSwap(false, true) {
		h.Set("Clear-Site-Data", `"cache"`)
	}

	next.ServeHTTP(w, r)
}

func cacheControlFor(path string) string {
	for prefix, age := range staticMaxAge {
		if strings.HasPrefix(path, prefix) {
			return "public, max-age=" + strconv.Itoa(int(age.Seconds()))
		}
	}

	return "private, no-cache"
}
