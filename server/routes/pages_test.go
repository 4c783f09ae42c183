// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target  string
		handler func(http.ResponseWriter, *http.Request) error
		title   string
	}{
		{"/", IndexPage, "DialectFE"},
		{"/about", AboutPage, "About · DialectFE"},
		{"/contact", ContactPage, "Contact · DialectFE"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			require.NoError(t, tt.handler(w, newRequest(http.MethodGet, tt.target, nil)))

			assert.True(t, strings.HasPrefix(w.Header().Get("Cache-Control"), "public, "))
			assert.Equal(t, tt.title, parse(t, w).Find("title").Text())
		})
	}
}

func TestAboutPage_ShowsRenderer(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	require.NoError(t, AboutPage(w, newRequest(http.MethodGet, "/about", nil, loggedIn)))

	assert.Equal(t, "private, no-cache", w.Header().Get("Cache-Control"))
	assert.Contains(t, parse(t, w).Find("dd").Text(), "brace-b")
}
