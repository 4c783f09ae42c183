// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/core/auth"
	"codeberg.org/dialectfe/dialectfe/server/middleware"
	"codeberg.org/dialectfe/dialectfe/server/middleware/limiter"
	"codeberg.org/dialectfe/dialectfe/server/middleware/set_request_context"
)

// RegisterMiddleware installs the middleware chain. svc may be nil, in which
// case every request is served logged out.
func (router *Router) RegisterMiddleware(svc *auth.Service) {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL)                // trailing slashes
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all pages need this
	router.Use(middleware.WithSession(svc))

	if config.Global.Limiter.Enabled {
		l := limiter.New(limiter.Config{
			Rate:       config.Global.Limiter.Rate,
			Burst:      config.Global.Limiter.Burst,
			IPv4Prefix: config.Global.Limiter.IPv4Prefix,
			IPv6Prefix: config.Global.Limiter.IPv6Prefix,
		})

		router.Use(l.Limit)
	}
}
