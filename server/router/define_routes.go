// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"time"

	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/core/auth"
	"codeberg.org/dialectfe/dialectfe/server/assets"
	"codeberg.org/dialectfe/dialectfe/server/middleware"
	"codeberg.org/dialectfe/dialectfe/server/routes"
)

// DefineRoutes registers every route. svc handles logins; the session
// routes are left out when it is nil.
func (router *Router) DefineRoutes(svc *auth.Service) {
	fileServerHandler := fileServer()

	router.Handle("GET /robots.txt", fileServerHandler)
	router.Handle("GET /css/", fileServerHandler)

	// Pages
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage))
	router.HandleFunc("GET /about", middleware.CatchError(routes.AboutPage))
	router.HandleFunc("GET /contact", middleware.CatchError(routes.ContactPage))
	router.HandleFunc("GET /test", middleware.CatchError(routes.PlaygroundPage))
	router.HandleFunc("POST /test", middleware.CatchError(routes.PlaygroundPage))

	// Entry routes
	router.HandleFunc("GET /entry", redirectWithQueryParam(routes.EntryRoute, "word"))
	router.HandleFunc("GET /entry/{word}", middleware.CatchError(routes.EntryPage))
	router.HandleFunc("POST /entry/{word}/refresh", middleware.CatchError(routes.EntryRefresh))

	// Markup rendering for scripts
	router.HandleFunc("POST /api/render", middleware.CatchError(routes.RenderPartial))

	// Settings routes
	router.HandleFunc("GET /settings", middleware.CatchError(routes.SettingsPage))
	router.HandleFunc("POST /settings/{action}", middleware.CatchError(routes.SettingsPOST))

	// Session routes
	if svc != nil {
		router.HandleFunc("GET /self/login", middleware.CatchError(routes.LoginPage))
		router.HandleFunc("POST /self/login", middleware.CatchError(routes.LoginPOST(svc)))
		router.HandleFunc("POST /self/logout", middleware.CatchError(routes.LogoutPOST(svc)))
	}

	// Anything else gets the themed 404 page.
	router.HandleFunc("/", middleware.CatchError(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNotFound)

		return nil
	}))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

// Serve static files from embedded assets.
func fileServer() http.HandlerFunc {
	staticContentFS, err := fs.Sub(assets.FS, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to create sub-filesystem for embedded 'assets' directory: %w", err))
	}

	fileServer := http.FileServer(http.FS(staticContentFS))

	return func(w http.ResponseWriter, r *http.Request) {
		// go:embed content only changes with a new build, so a per-instance
		// cache ID is a strong validator.
		// ref: https://www.rfc-editor.org/rfc/rfc9110#weak.and.strong.validators
		w.Header().Set("ETag", `"`+config.Global.Instance.FileServerCacheID+`"`)
		fileServer.ServeHTTP(w, r)
	}
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	if err := flightRecorder.Start(); err != nil {
		panic(err)
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
