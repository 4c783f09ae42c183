// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package router assembles the HTTP handler: routes on a ServeMux behind a
// chain of middleware.
package router

import (
	"net/http"
	"sync"

	"codeberg.org/dialectfe/dialectfe/server/middleware"
)

// Router is a ServeMux with middleware in front of it.
//
// Routes and middleware are registered during startup. The chain is built on
// the first request, so Use has no effect after that.
type Router struct {
	*http.ServeMux

	middlewares []middleware.Middleware

	once  sync.Once
	chain http.Handler
}

func NewRouter() *Router {
	return &Router{ServeMux: http.NewServeMux()}
}

// Use appends m to the chain. Earlier middleware runs first.
func (router *Router) Use(m middleware.Middleware) {
	router.middlewares = append(router.middlewares, m)
}

func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	router.once.Do(func() {
		var h http.Handler = router.ServeMux
		for i := len(router.middlewares) - 1; i >= 0; i-- {
			h = middleware.Wrap(router.middlewares[i], h)
		}

		router.chain = h
	})

	router.chain.ServeHTTP(w, r)
}
