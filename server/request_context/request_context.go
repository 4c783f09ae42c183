// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package request_context holds the state one request carries from the
// middleware to the handler and the views. It sits below both so neither has
// to import the other.
package request_context

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/dialectfe/dialectfe/core/idgen"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/server/template/commondata"
)

// RequestContext is created once per request by WithRequestContext and
// mutated in place by later middleware.
type RequestContext struct {
	RequestID string

	// RequestError is set by middleware.CatchError when the handler fails.
	// The error page is rendered from it.
	RequestError error

	// StatusCode is the status of the response, 200 until something fails.
	StatusCode int

	CommonData commondata.PageCommonData

	// T is the interface language chosen for the request.
	T language.Tag
}

type key struct{}

// WithRequestContext resolves the language of r and returns a context
// carrying a fresh RequestContext and a logger tagged with its ID.
func WithRequestContext(ctx context.Context, r *http.Request) context.Context {
	ctx = i18n.WithRequest(ctx, r)

	rc := &RequestContext{
		RequestID:  idgen.Make(),
		StatusCode: http.StatusOK,
		T:          i18n.TagFrom(ctx),
	}

	commondata.PopulatePageCommonData(r, &rc.CommonData)
	rc.CommonData.Lang = rc.T.String()

	ctx = log.With().Str("request_id", rc.RequestID).Logger().WithContext(ctx)

	return context.WithValue(ctx, key{}, rc)
}

// FromContext returns the RequestContext of ctx. Outside a request, for
// example in tests of a single view, it returns a fresh value so callers
// never check for nil.
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(key{}).(*RequestContext); ok {
		return rc
	}

	return &RequestContext{StatusCode: http.StatusOK, T: i18n.TagFrom(ctx)}
}

func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
