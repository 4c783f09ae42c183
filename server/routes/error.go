// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/dialectfe/dialectfe/assets/views"
	"codeberg.org/dialectfe/dialectfe/core/auth"
	"codeberg.org/dialectfe/dialectfe/core/entry"
	"codeberg.org/dialectfe/dialectfe/core/requests"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
)

// statusError attaches the HTTP status the error page should be served with.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }

func (e *statusError) Unwrap() error { return e.err }

// withStatus marks err to be served with status.
func withStatus(status int, err error) error {
	return &statusError{status: status, err: err}
}

// ErrorStatus picks the status code of the error page for err.
func ErrorStatus(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.status
	}

	switch {
	case errors.Is(err, entry.ErrNotFound), errors.Is(err, entry.ErrEmptyWord):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrCheckThrottled):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	var apiErr *requests.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// ErrorPage renders the error page for the request's RequestError with the
// request's StatusCode. It writes the status itself.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	ctx := request_context.FromRequest(r)

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(ctx.StatusCode)

	pageData := views.ErrorData{
		Title:      i18n.Tr(r.Context(), "Error"),
		Error:      ctx.RequestError,
		StatusCode: ctx.StatusCode,
	}

	if err := views.Error(pageData).Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Err(err).Msg("Failed to render the error page")
	}
}
