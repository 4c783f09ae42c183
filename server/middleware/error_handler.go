// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/dialectfe/dialectfe/assets/views"
	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/core/audit"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
	"codeberg.org/dialectfe/dialectfe/server/routes"
)

// CatchError turns a handler that returns an error into an http.HandlerFunc.
//
// The handler writes into a buffer. What reaches the client depends on how
// it finished:
//   - a *routes.UnauthorizedError renders the 401 login prompt;
//   - any other error, unless the handler already wrote a 4xx or 5xx status,
//     renders the error page with the status routes.ErrorStatus picks;
//   - a bare 404 renders the error page too;
//   - everything else is copied out unchanged.
//
// Each request is logged as an audit span afterwards.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToUser,
			RequestID:   rc.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
		}
		_ = span.Begin(r.Context())

		buf := httptest.NewRecorder()
		rc.RequestError = handler(buf, r)

		var unauthorized *routes.UnauthorizedError

		switch {
		case errors.As(rc.RequestError, &unauthorized):
			rc.StatusCode = http.StatusUnauthorized
			writeUnauthorized(w, r, unauthorized)

		case rc.RequestError != nil && buf.Code < http.StatusBadRequest:
			rc.StatusCode = routes.ErrorStatus(rc.RequestError)
			routes.ErrorPage(w, r)

		case buf.Code == http.StatusNotFound:
			rc.StatusCode = http.StatusNotFound
			routes.ErrorPage(w, r)

		default:
			rc.StatusCode = buf.Code
			span.Size = buf.Body.Len()

			flush(w, buf)
		}

		span.End()
		span.StatusCode = rc.StatusCode
		span.Error = rc.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, err *routes.UnauthorizedError) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)

	page := views.Unauthorized(views.UnauthorizedData{
		Title:            i18n.Tr(r.Context(), "Log in"),
		NoAuthReturnPath: err.NoAuthReturnPath,
		LoginReturnPath:  err.LoginReturnPath,
	})

	if renderErr := page.Render(r.Context(), w); renderErr != nil {
		log.Ctx(r.Context()).Err(renderErr).Msg("Failed to render the login prompt")
	}
}

// flush copies a buffered response to w.
func flush(w http.ResponseWriter, buf *httptest.ResponseRecorder) {
	dst := w.Header()

	for k, vs := range buf.Header() {
		// keep cookies set by earlier middleware
		if k == "Set-Cookie" {
			dst[k] = append(dst[k], vs...)
		} else {
			dst[k] = vs
		}
	}

	w.WriteHeader(buf.Code)

	if _, err := buf.Body.WriteTo(w); err != nil {
		log.Err(err).Msg("Failed to write response body")
	}
}
