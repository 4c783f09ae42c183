// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/core/requests/lrucache"
)

var (
	cacheMu sync.RWMutex
	cache   *lrucache.Cache[[]byte]

	// excludedCachePaths lists API endpoints for which responses are never cached.
	excludedCachePaths = []string{
		"/api/checkAuth",
		"/api/login",
		"/api/logout",
	}
)

// cachedItem is the gob-encoded form of a cached upstream response.
type cachedItem struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// cachePolicy defines the caching behavior for a request.
type cachePolicy struct {
	// Whether to store an OK response that we receive.
	shouldStore bool

	// The cached item if available and valid.
	cachedItem *cachedItem
}

// Setup initializes the upstream response cache from config.Global.Cache.
//
// If caching is disabled in the configuration, any existing cache is dropped.
func Setup() error {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if !config.Global.Cache.Enabled {
		cache = nil

		log.Info().
			Msg("Cache is disabled, skipping cache initialization")

		return nil
	}

	opts := []lrucache.Option{lrucache.WithTTL(config.Global.Cache.TTL)}
	if config.Global.Cache.Compress {
		opts = append(opts, lrucache.WithCompression())
	}

	c, err := lrucache.New[[]byte](config.Global.Cache.Size, opts...)
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}

	cache = c

	log.Info().
		Int("size", config.Global.Cache.Size).
		Dur("ttl", config.Global.Cache.TTL).
		Bool("compress", config.Global.Cache.Compress).
		Msg("Initialized API response cache")

	return nil
}

func currentCache() *lrucache.Cache[[]byte] {
	cacheMu.RLock()
	defer cacheMu.RUnlock()

	return cache
}

// generateCacheKey hashes the request URL. Only public dictionary data is
// cached, so responses are not scoped to a session.
func generateCacheKey(url string) string {
	hasher := fnv.New64a()

	_, _ = hasher.Write([]byte(url))

	return strconv.FormatUint(hasher.Sum64(), 16)
}

// determineCachePolicy returns a cached response when one is available, or
// whether a fresh response should be stored.
func determineCachePolicy(opts RequestOptions) cachePolicy {
	c := currentCache()
	if c == nil || opts.SkipCache || opts.Method != http.MethodGet {
		return cachePolicy{}
	}

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return cachePolicy{}
	}

	cleanPath := path.Clean(parsedURL.Path)
	for _, exclPath := range excludedCachePaths {
		if strings.HasPrefix(cleanPath, exclPath) {
			return cachePolicy{}
		}
	}

	// Honor "no-cache" directive from the downstream client: skip both read and write.
	lowerCacheControl := strings.ToLower(opts.IncomingHeaders.Get("Cache-Control"))
	if strings.Contains(lowerCacheControl, "no-cache") {
		return cachePolicy{}
	}

	cacheKey := generateCacheKey(opts.URL)

	if cached, found := c.Get(cacheKey); found {
		if item, ok := decodeCachedItem(cached); ok {
			return cachePolicy{cachedItem: item}
		}

		log.Warn().Str("key", cacheKey).Msg("Failed to decode cached item; removing")
		c.Remove(cacheKey)
	}

	return cachePolicy{
		shouldStore: !strings.Contains(lowerCacheControl, "no-store"),
	}
}

func decodeCachedItem(encoded []byte) (*cachedItem, bool) {
	var item cachedItem
	if err := gob.NewDecoder(bytes.NewReader(encoded)).Decode(&item); err != nil {
		return nil, false
	}

	return &item, true
}

func storeResponse(rawURL string, resp *http.Response, body []byte) error {
	c := currentCache()
	if c == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cachedItem{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
		URL:        rawURL,
	}); err != nil {
		return fmt.Errorf("failed to serialize item for cache: %w", err)
	}

	c.Add(generateCacheKey(rawURL), buf.Bytes())

	return nil
}

// InvalidateURLs removes all cached responses whose URL starts with any of
// the given prefixes and returns how many were removed.
func InvalidateURLs(urlPrefixes []string) int {
	c := currentCache()
	if c == nil || len(urlPrefixes) == 0 {
		return 0
	}

	invalidatedCount := 0

	for _, key := range c.Keys() {
		v, ok := c.Peek(key)
		if !ok {
			continue
		}

		// A corrupt item is removed on its next Get.
		item, ok := decodeCachedItem(v)
		if !ok {
			continue
		}

		for _, prefix := range urlPrefixes {
			if strings.HasPrefix(item.URL, prefix) {
				c.Remove(key)

				invalidatedCount++

				break
			}
		}
	}

	log.Info().
		Int("count", invalidatedCount).
		Strs("prefixes", urlPrefixes).
		Msg("Invalidated URLs")

	return invalidatedCount
}
