// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
DialectFE is a front-end for a dialect dictionary. It renders entries written
in the dictionary's inline markup and proxies logins to the dictionary API.
*/
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/core/audit"
	"codeberg.org/dialectfe/dialectfe/core/auth"
	"codeberg.org/dialectfe/dialectfe/core/requests"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/server/assets"
	"codeberg.org/dialectfe/dialectfe/server/router"
)

// http.Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 20 * time.Second
	idleTimeout       = time.Minute

	serverShutdownDeadline = 5 * time.Second
)

//go:embed assets/css assets/robots.txt
//go:embed po
var embeddedContent embed.FS

func init() {
	assets.FS = embeddedContent
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run loads the configuration and serves until SIGINT or SIGTERM.
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := i18n.Setup(); err != nil {
		return fmt.Errorf("failed to initialize i18n engine: %w", err)
	}

	if err := requests.Setup(); err != nil {
		return fmt.Errorf("failed to initialize API response cache: %w", err)
	}

	svc, err := newAuthService()
	if err != nil {
		return err
	}

	r := router.NewRouter()
	r.DefineRoutes(svc)
	r.RegisterMiddleware(svc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, r)
}

// serve runs an HTTP server for handler until ctx is done, then shuts it down
// gracefully.
func serve(ctx context.Context, handler http.Handler) error {
	listener, err := listen(ctx)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info().Msg("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverShutdownDeadline)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

// newAuthService wires the session cookie signer and the cached token
// checker that fronts the dictionary API.
func newAuthService() (*auth.Service, error) {
	cfg := config.Global.Auth

	checker, err := auth.NewChecker(auth.CheckerConfig{
		CacheSize:       cfg.CacheSize,
		CacheTTL:        cfg.CacheTTL,
		ChecksPerSecond: cfg.ChecksPerSecond,
		Burst:           cfg.Burst,
	}, auth.CheckRemote)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth checker: %w", err)
	}

	log.Info().
		Int("cache_size", cfg.CacheSize).
		Dur("cache_ttl", cfg.CacheTTL).
		Float64("checks_per_second", cfg.ChecksPerSecond).
		Msg("Initialized auth checker")

	return auth.NewService(auth.NewSessions(config.Global.Basic.SessionKey), checker), nil
}
