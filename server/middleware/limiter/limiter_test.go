// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{Rate: 1, Burst: 2, IPv4Prefix: 24, IPv6Prefix: 64}

// newTestLimiter returns a Limiter whose clock only moves when *now is changed.
func newTestLimiter(now *time.Time) *Limiter {
	l := New(testConfig)
	l.now = func() time.Time { return *now }

	return l
}

func serve(l *Limiter, method, remoteAddr string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, "/self/login", nil)
	r.RemoteAddr = remoteAddr

	w := httptest.NewRecorder()
	l.Limit(w, r, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	return w
}

func TestLimit_SafeMethodsAreFree(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	l := newTestLimiter(&now)

	for range 10 {
		assert.Equal(t, http.StatusNoContent, serve(l, http.MethodGet, "203.0.113.7:1").Code)
	}

	assert.Zero(t, l.Len())
}

func TestLimit_SharesBucketPerNetwork(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	l := newTestLimiter(&now)

	assert.Equal(t, http.StatusNoContent, serve(l, http.MethodPost, "203.0.113.7:1").Code)
	assert.Equal(t, http.StatusNoContent, serve(l, http.MethodPost, "203.0.113.8:2").Code)

	w := serve(l, http.MethodPost, "203.0.113.9:3")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Too many requests")

	assert.Equal(t, http.StatusNoContent, serve(l, http.MethodPost, "198.51.100.1:4").Code, "other networks are unaffected")
	assert.Equal(t, 2, l.Len())

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, serve(l, http.MethodPost, "203.0.113.7:1").Code, "one token refilled")
}

func TestAllow_CleansUpIdleNetworks(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	l := newTestLimiter(&now)

	require.True(t, l.Allow("192.0.2.0/24"))

	now = now.Add(ExpiryDuration + CleanupInterval)
	require.True(t, l.Allow("198.51.100.0/24"))

	assert.Equal(t, 1, l.Len())
}

func TestNetworkOf(t *testing.T) {
	t.Parallel()

	l := New(testConfig)

	tests := []struct {
		remoteAddr string
		header     http.Header
		want       string
	}{
		{"203.0.113.7:1", nil, "203.0.113.0/24"},
		{"[2001:db8::1]:1", nil, "2001:db8::/64"},
		{"127.0.0.1:1", http.Header{"X-Real-Ip": {"192.0.2.9"}}, "192.0.2.0/24"},
		{"203.0.113.7:1", http.Header{"X-Real-Ip": {"192.0.2.9"}}, "203.0.113.0/24"},
		{"garbage", nil, "unknown"},
	}

	for _, tt := range tests {
		r := &http.Request{RemoteAddr: tt.remoteAddr, Header: tt.header}
		if r.Header == nil {
			r.Header = http.Header{}
		}

		assert.Equal(t, tt.want, l.networkOf(r), tt.remoteAddr)
	}
}
