// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		header     http.Header
		want       string
		wantOK     bool
	}{
		{"plain peer", "198.51.100.4:5000", nil, "198.51.100.4", true},
		{"peer without port", "198.51.100.4", nil, "198.51.100.4", true},
		{"mapped peer", "[::ffff:198.51.100.4]:5000", nil, "198.51.100.4", true},
		{"real ip from loopback proxy", "127.0.0.1:1", http.Header{"X-Real-Ip": {"192.0.2.1"}}, "192.0.2.1", true},
		{"last forwarded hop from private proxy", "10.0.0.2:1", http.Header{"X-Forwarded-For": {"192.0.2.1, 192.0.2.2"}}, "192.0.2.2", true},
		{"real ip wins over forwarded", "10.0.0.2:1", http.Header{"X-Real-Ip": {"192.0.2.1"}, "X-Forwarded-For": {"192.0.2.2"}}, "192.0.2.1", true},
		{"headers from public peer ignored", "203.0.113.7:1", http.Header{"X-Real-Ip": {"192.0.2.1"}}, "203.0.113.7", true},
		{"bad header falls back to proxy", "10.0.0.2:1", http.Header{"X-Real-Ip": {"nope"}}, "10.0.0.2", true},
		{"unparsable peer", "garbage", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &http.Request{RemoteAddr: tt.remoteAddr, Header: tt.header}
			if r.Header == nil {
				r.Header = http.Header{}
			}

			got, ok := clientAddr(r)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestMaskAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr   string
		v4, v6 int
		want   string
	}{
		{"192.0.2.77", 24, 64, "192.0.2.0/24"},
		{"192.0.2.77", 16, 64, "192.0.0.0/16"},
		{"192.0.2.77", 32, 64, "192.0.2.77/32"},
		{"2001:db8:1:2:3::9", 24, 64, "2001:db8:1:2::/64"},
		{"2001:db8:1:2:3::9", 24, 48, "2001:db8:1::/48"},
		{"192.0.2.77", 40, 64, "192.0.2.77/32"},
	}

	for _, tt := range tests {
		got := maskAddr(netip.MustParseAddr(tt.addr), tt.v4, tt.v6)
		assert.Equal(t, tt.want, got.String(), "%s v4=%d v6=%d", tt.addr, tt.v4, tt.v6)
	}
}
