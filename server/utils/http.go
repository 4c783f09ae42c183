// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/netip"
)

const (
	// Every request goes to the one dictionary API host, so its idle pool
	// is the only one that matters.
	apiIdleConns = 32

	apiTLSSessionCache = 8

	apiBufferSize = 16 << 10
)

// APIClient is the client used for all requests to the dictionary API.
// It honours HTTP(S)_PROXY from the environment.
var APIClient = &http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			ClientSessionCache: tls.NewLRUClientSessionCache(apiTLSSessionCache),
		},
		MaxIdleConns:        apiIdleConns,
		MaxIdleConnsPerHost: apiIdleConns,
		ReadBufferSize:      apiBufferSize,
		WriteBufferSize:     apiBufferSize,
	},
}

// IsConnectionSecure reports whether the client reached us over HTTPS,
// either directly or through a reverse proxy on a private or loopback
// address that says so in X-Forwarded-Proto.
//
// A proxy with a public address is not trusted, so deployments behind one
// get cookies without the Secure flag.
func IsConnectionSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return false
	}

	peer, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}

	peer = peer.Unmap()
	if !peer.IsPrivate() && !peer.IsLoopback() {
		return false
	}

	return r.Header.Get("X-Forwarded-Proto") == "https"
}
