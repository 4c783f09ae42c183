// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"codeberg.org/dialectfe/dialectfe/core/requests/lrucache"
)

// ErrCheckThrottled is returned when too many tokens needed a remote check
// at once. The verdict is unknown, not negative.
var ErrCheckThrottled = errors.New("auth check throttled")

// RemoteCheck asks the dictionary API whether token is valid.
type RemoteCheck func(ctx context.Context, token string) (bool, error)

// Checker validates API tokens, remembering verdicts for a while.
type Checker struct {
	verdicts *lrucache.Cache[bool]
	limiter  *rate.Limiter
	group    singleflight.Group
	remote   RemoteCheck
}

// CheckerConfig sizes a Checker.
type CheckerConfig struct {
	CacheSize       int
	CacheTTL        time.Duration
	ChecksPerSecond float64
	Burst           int
}

// NewChecker returns a Checker that calls remote on cache misses.
func NewChecker(cfg CheckerConfig, remote RemoteCheck, opts ...lrucache.Option) (*Checker, error) {
	verdicts, err := lrucache.New[bool](cfg.CacheSize, append([]lrucache.Option{lrucache.WithTTL(cfg.CacheTTL)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth verdict cache: %w", err)
	}

	return &Checker{
		verdicts: verdicts,
		limiter:  rate.NewLimiter(rate.Limit(cfg.ChecksPerSecond), cfg.Burst),
		remote:   remote,
	}, nil
}

// tokenKey keeps raw tokens out of the cache.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// Check reports whether token is valid. An empty token is never valid.
//
// Concurrent checks of the same token share one remote call. Errors,
// including ErrCheckThrottled, are not remembered.
func (c *Checker) Check(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	key := tokenKey(token)

	if valid, ok := c.verdicts.Get(key); ok {
		return valid, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		if !c.limiter.Allow() {
			return false, ErrCheckThrottled
		}

		// detach from the first caller so that its cancellation does not fail the others
		valid, err := c.remote(context.WithoutCancel(ctx), token)
		if err != nil {
			return false, err
		}

		c.verdicts.Add(key, valid)

		return valid, nil
	})
	if err != nil {
		return false, err
	}

	if shared {
		log.Debug().Str("sys", "auth").Msg("Shared a token check with a concurrent request")
	}

	valid, _ := v.(bool)

	return valid, nil
}

// Forget drops the remembered verdict for token.
func (c *Checker) Forget(token string) {
	c.verdicts.Remove(tokenKey(token))
}

// Remember records a verdict without asking the API, e.g. right after login.
func (c *Checker) Remember(token string, valid bool) {
	if token != "" {
		c.verdicts.Add(tokenKey(token), valid)
	}
}
