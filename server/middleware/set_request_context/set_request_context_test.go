// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/dialectfe/dialectfe/server/middleware"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
)

// capture serves r through the middleware and returns what the handler saw.
func capture(t *testing.T, r *http.Request) (*request_context.RequestContext, *httptest.ResponseRecorder) {
	t.Helper()

	var rc *request_context.RequestContext

	handler := middleware.Wrap(WithRequestContext, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc = request_context.FromRequest(r)

		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, r)

	require.NotNil(t, rc, "next handler was not called")

	return rc, rr
}

func TestWithRequestContext(t *testing.T) {
	t.Parallel()

	rc, rr := capture(t, httptest.NewRequest(http.MethodPost, "/entry/x?lang=zh-Hans&q=1", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, rc.RequestID)
	assert.Equal(t, rc.RequestID, rr.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusOK, rc.StatusCode)
	assert.NoError(t, rc.RequestError)

	assert.Equal(t, "/entry/x", rc.CommonData.CurrentPath)
	assert.Equal(t, "/entry/x?lang=zh-Hans&q=1", rc.CommonData.CurrentPathWithParams)
	assert.Equal(t, "1", rc.CommonData.Queries["q"])
	assert.Equal(t, rc.T.String(), rc.CommonData.Lang)
	assert.False(t, rc.CommonData.LoggedIn, "sessions are resolved by a later middleware")
}

func TestWithRequestContext_UniqueIDs(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}

	for range 5 {
		rc, _ := capture(t, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, seen[rc.RequestID], "duplicate request ID %s", rc.RequestID)
		seen[rc.RequestID] = true
	}
}

func TestWithRequestContext_Logger(t *testing.T) {
	t.Parallel()

	var logger *zerolog.Logger

	handler := middleware.Wrap(WithRequestContext, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		logger = zerolog.Ctx(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, logger)
	assert.NotEqual(t, zerolog.Disabled, logger.GetLevel(), "handlers get a live request logger")
}

func TestFromContext_OutsideRequest(t *testing.T) {
	t.Parallel()

	rc := request_context.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rc.StatusCode)
	assert.Empty(t, rc.RequestID)
}
