// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchRedirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target   string
		location string
	}{
		{"/entry?word=%20%E8%9B%90%20", "/entry/%E8%9B%90"},
		{"/entry?word=a%2Fb", "/entry/a%2Fb"},
		{"/entry?word=%20", "/"},
		{"/entry", "/"},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		redirectWithQueryParam("/entry/", "word").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

		assert.Equal(t, http.StatusFound, rr.Code, tt.target)
		assert.Equal(t, tt.location, rr.Header().Get("Location"), tt.target)
	}
}
