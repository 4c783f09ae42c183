// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/dialectfe/dialectfe/server/utils"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		urlStr   string
		wantErr  bool
		expected string
	}{
		{"valid URL", "https://example.com", false, "https://example.com"},
		{"valid URL with path", "https://example.com/api", false, "https://example.com/api"},
		{"trailing slash", "https://example.com/api/", false, "https://example.com/api"},
		{"surrounding space", "  http://localhost:8080 ", false, "http://localhost:8080"},
		{"query kept", "https://example.com/api?x=1", false, "https://example.com/api?x=1"},
		{"missing scheme", "example.com", true, ""},
		{"missing host", "https://", true, ""},
		{"empty", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := utils.ParseURL(tt.urlStr, "Test")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Test URL")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestRequestGetters(t *testing.T) {
	t.Parallel()

	form := url.Values{"text": {"  {b 粗}  "}}
	r := httptest.NewRequest(http.MethodPost, "/entry/x?word=%20%E8%9B%90%20&blank=%20", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.SetPathValue("word", " 蛐蛐 ")

	assert.Equal(t, "蛐", utils.GetQueryParam(r, "word"))
	assert.Equal(t, "fallback", utils.GetQueryParam(r, "blank", "fallback"))
	assert.Empty(t, utils.GetQueryParam(r, "missing"))
	assert.Equal(t, "蛐蛐", utils.GetPathVar(r, "word"))
	assert.Equal(t, "-", utils.GetPathVar(r, "other", "-"))
	assert.Equal(t, "  {b 粗}  ", utils.GetFormValue(r, "text"))
	assert.Equal(t, "legacy", utils.GetFormValue(r, "variant", "legacy"))
}

func TestGetOriginFromRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "http://dict.example/entry/x", nil)
	assert.Equal(t, "http://dict.example", utils.GetOriginFromRequest(r))

	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://dict.example", utils.GetOriginFromRequest(r))
}

func TestEntryPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/entry/%E8%9B%90", utils.EntryPath("/entry/", "蛐"))
	assert.Equal(t, "/w/a%2Fb", utils.EntryPath("/w/", "a/b"))
}

func TestSanitizeReturnPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/entry/x", "/entry/x"},
		{" /settings ", "/settings"},
		{"", ""},
		{"entry", ""},
		{"//evil.example", ""},
		{`/\evil.example`, ""},
		{"https://evil.example/", ""},
		{"/redirect?to=https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, utils.SanitizeReturnPath(tt.in))
		})
	}
}

func TestIsConnectionSecure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		proto      string
		want       bool
	}{
		{"private proxy with https", "10.0.0.2:1234", "https", true},
		{"private proxy without header", "10.0.0.2:1234", "", false},
		{"loopback proxy with https", "127.0.0.1:1234", "https", true},
		{"mapped private proxy", "[::ffff:192.168.1.4]:1234", "https", true},
		{"public address ignores header", "203.0.113.7:1234", "https", false},
		{"unparsable address", "nonsense", "https", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr

			if tt.proto != "" {
				r.Header.Set("X-Forwarded-Proto", tt.proto)
			}

			assert.Equal(t, tt.want, utils.IsConnectionSecure(r))
		})
	}
}
