// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"time"

	"codeberg.org/dialectfe/dialectfe/markup"
)

const (
	defaultConfigFile = "./config.yaml"

	// Default entry cache TTL in minutes.
	defaultCacheTTLMinutes = 60
	// Default HTTP cache max age in seconds.
	defaultHTTPCacheMaxAgeSeconds = 30
	// Default HTTP cache stale while revalidate in seconds.
	defaultHTTPCacheStaleWhileRevalidateSeconds = 60

	// Default upstream request timeout in seconds.
	defaultAPITimeoutSeconds = 10

	// Default lifetime of a cached auth verdict in seconds.
	defaultAuthCacheTTLSeconds = 60
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8383"

	cfg.API.BaseURL = "http://localhost:8080"
	cfg.API.Timeout = defaultAPITimeoutSeconds * time.Second

	cfg.Auth.CacheSize = 1024
	cfg.Auth.CacheTTL = defaultAuthCacheTTLSeconds * time.Second
	cfg.Auth.ChecksPerSecond = 20
	cfg.Auth.Burst = 40

	cfg.Cache.Enabled = false
	cfg.Cache.Size = 500
	cfg.Cache.TTL = defaultCacheTTLMinutes * time.Minute
	cfg.Cache.Compress = true

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeSeconds * time.Second
	cfg.HTTPCache.StaleWhileRevalidate = defaultHTTPCacheStaleWhileRevalidateSeconds * time.Second

	cfg.Limiter.Enabled = true
	cfg.Limiter.Rate = 1
	cfg.Limiter.Burst = 20
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 64

	cfg.Markup.Variant = markup.BraceAndBracket.String()
	cfg.Markup.LegacyBracketStrip = false
	cfg.Markup.LinkTargetPrefix = markup.DefaultLinkTargetPrefix

	cfg.Instance.RepoURL = "https://codeberg.org/dialectfe/dialectfe"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Internationalization.StrictMissingKeys = false
	cfg.Internationalization.DefaultLocale = "zh-Hans"
}
