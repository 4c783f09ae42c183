// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientAddr returns the address a request is counted under.
//
// X-Real-IP, then the last hop of X-Forwarded-For, are honoured only when the
// peer is a private or loopback address, i.e. a reverse proxy we run.
func clientAddr(r *http.Request) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	peer, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}

	peer = peer.Unmap()

	if !peer.IsPrivate() && !peer.IsLoopback() {
		return peer, true
	}

	if forwarded, ok := forwardedAddr(r.Header); ok {
		return forwarded, true
	}

	return peer, true
}

func forwardedAddr(h http.Header) (netip.Addr, bool) {
	candidate := strings.TrimSpace(h.Get("X-Real-IP"))

	if candidate == "" {
		xff := h.Get("X-Forwarded-For")
		if i := strings.LastIndexByte(xff, ','); i >= 0 {
			xff = xff[i+1:]
		}

		candidate = strings.TrimSpace(xff)
	}

	addr, err := netip.ParseAddr(candidate)
	if err != nil {
		return netip.Addr{}, false
	}

	return addr.Unmap(), true
}

// maskAddr returns the network of addr at the configured prefix length.
func maskAddr(addr netip.Addr, ipv4Prefix, ipv6Prefix int) netip.Prefix {
	bits := ipv6Prefix
	if addr.Is4() {
		bits = ipv4Prefix
	}

	prefix, err := addr.Prefix(bits)
	if err != nil {
		return netip.PrefixFrom(addr, addr.BitLen())
	}

	return prefix
}
