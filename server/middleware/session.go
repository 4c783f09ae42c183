// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"codeberg.org/dialectfe/dialectfe/core/auth"
	"codeberg.org/dialectfe/dialectfe/core/cookie"
	"codeberg.org/dialectfe/dialectfe/core/untrusted"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
)

// WithSession resolves the Access cookie and marks the request as logged in
// when the dictionary API accepts the token it carries.
//
// A cookie that is definitely unusable is cleared. When the API could not be
// asked, the request is served logged out and the cookie is kept.
// It must run after the request context is attached.
func WithSession(svc *auth.Service) Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		signed := untrusted.GetAccessToken(r)
		if svc == nil || signed == "" {
			next.ServeHTTP(w, r)

			return
		}

		res := svc.Resolve(r.Context(), signed)

		if res.LoggedIn {
			cd := &request_context.FromRequest(r).CommonData
			cd.LoggedIn = true
			cd.Username = res.Session.Username
			cd.Token = res.Session.Token
		}

		if res.DropCookie {
			untrusted.ClearCookie(w, r, cookie.AccessCookie)
		}

		next.ServeHTTP(w, r)
	}
}
