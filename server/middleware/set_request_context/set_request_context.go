// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package set_request_context installs the per-request state every later
// middleware and handler reads.
package set_request_context

import (
	"net/http"

	"codeberg.org/dialectfe/dialectfe/server/request_context"
)

// RequestIDHeader echoes the request ID so a report can be matched to the logs.
const RequestIDHeader = "X-Request-Id"

// WithRequestContext attaches a RequestContext to r and writes its ID to the
// response headers.
func WithRequestContext(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := request_context.WithRequestContext(r.Context(), r)

	w.Header().Set(RequestIDHeader, request_context.FromContext(ctx).RequestID)

	next.ServeHTTP(w, r.WithContext(ctx))
}
