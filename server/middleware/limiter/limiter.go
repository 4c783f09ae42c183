// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/dialectfe/dialectfe/i18n"
)

const (
	// ExpiryDuration is how long an idle network keeps its bucket.
	ExpiryDuration = time.Hour
	// CleanupInterval is the minimum time between two sweeps of idle networks.
	CleanupInterval = 5 * time.Minute
)

// Config sizes a Limiter.
type Config struct {
	Rate       float64
	Burst      int
	IPv4Prefix int
	IPv6Prefix int
}

// Limiter holds one token bucket per client network.
type Limiter struct {
	cfg      Config
	networks sync.Map // network string -> *networkLimiter
	now      func() time.Time

	cleanupMu     sync.Mutex
	lastCleanupAt time.Time
}

// networkLimiter is the bucket of one network.
type networkLimiter struct {
	mu         sync.Mutex
	limiter    *rate.Limiter
	lastAccess time.Time
}

// New returns a Limiter for cfg.
func New(cfg Config) *Limiter {
	return &Limiter{cfg: cfg, now: time.Now}
}

// Limit is the middleware. Safe methods always pass; others spend one token
// of the client's network and are answered with 429 when it has none left.
func (l *Limiter) Limit(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if isSafeMethod(r.Method) {
		next.ServeHTTP(w, r)

		return
	}

	network := l.networkOf(r)

	if !l.Allow(network) {
		log.Ctx(r.Context()).Warn().
			Str("sys", "limiter").
			Str("network", network).
			Str("path", r.URL.Path).
			Msg("Rate limit exceeded")

		w.Header().Set("Retry-After", strconv.Itoa(l.retryAfterSeconds()))
		http.Error(w, i18n.Tr(r.Context(), "Too many requests, please try again later."), http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

// Allow spends one token of network's bucket.
func (l *Limiter) Allow(network string) bool {
	now := l.now()

	l.maybeCleanup(now)

	value, _ := l.networks.LoadOrStore(network, &networkLimiter{
		limiter: rate.NewLimiter(rate.Limit(l.cfg.Rate), l.cfg.Burst),
	})

	nl, _ := value.(*networkLimiter)

	nl.mu.Lock()
	defer nl.mu.Unlock()

	nl.lastAccess = now

	return nl.limiter.AllowN(now, 1)
}

// Len returns the number of networks currently tracked.
func (l *Limiter) Len() int {
	n := 0

	l.networks.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}

func (l *Limiter) networkOf(r *http.Request) string {
	addr, ok := clientAddr(r)
	if !ok {
		// unknown clients share one bucket
		return "unknown"
	}

	return maskAddr(addr, l.cfg.IPv4Prefix, l.cfg.IPv6Prefix).String()
}

func (l *Limiter) retryAfterSeconds() int {
	if l.cfg.Rate <= 0 {
		return int(CleanupInterval.Seconds())
	}

	return max(1, int(1/l.cfg.Rate))
}

func (l *Limiter) maybeCleanup(now time.Time) {
	l.cleanupMu.Lock()

	if l.lastCleanupAt.IsZero() {
		l.lastCleanupAt = now
	}

	due := now.Sub(l.lastCleanupAt) >= CleanupInterval
	if due {
		l.lastCleanupAt = now
	}

	l.cleanupMu.Unlock()

	if due {
		l.cleanupExpired(now)
	}
}

// cleanupExpired removes buckets that have not been used for ExpiryDuration.
func (l *Limiter) cleanupExpired(now time.Time) {
	expired := 0

	l.networks.Range(func(key, value any) bool {
		nl, ok := value.(*networkLimiter)
		if !ok {
			l.networks.Delete(key)

			return true
		}

		nl.mu.Lock()
		idle := now.Sub(nl.lastAccess) > ExpiryDuration
		nl.mu.Unlock()

		if idle {
			l.networks.Delete(key)

			expired++
		}

		return true
	})

	if expired > 0 {
		log.Info().Str("sys", "limiter").Int("count", expired).Msg("Cleaned up expired limiters")
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
