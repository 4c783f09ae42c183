// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/core/entry"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// maxPrefetchedEntries bounds the Link header size on entry pages.
const maxPrefetchedEntries = 4

// setPublicCache marks the response as cacheable by shared caches, unless the
// request is logged in: logged-in pages show the account area.
func setPublicCache(w http.ResponseWriter, r *http.Request) {
	if request_context.FromRequest(r).CommonData.LoggedIn {
		w.Header().Set("Cache-Control", "private, no-cache")

		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d",
		int(config.Global.HTTPCache.MaxAge.Seconds()),
		int(config.Global.HTTPCache.StaleWhileRevalidate.Seconds())))
}

// makePrefetchLink returns a Link header fragment to prefetch a page with low priority.
func makePrefetchLink(url string) string {
	return fmt.Sprintf("<%s>; rel=\"prefetch\"; fetchpriority=\"low\"", url)
}

// prefetchRelated writes a single Link header prefetching the first related
// entry pages.
func prefetchRelated(w http.ResponseWriter, r *http.Request, previews []entry.Preview) {
	prefix := request_context.FromRequest(r).CommonData.LinkPrefix

	linkValues := make([]string, 0, min(len(previews), maxPrefetchedEntries))

	for _, p := range previews[:min(len(previews), maxPrefetchedEntries)] {
		linkValues = append(linkValues, makePrefetchLink(utils.EntryPath(prefix, p.Word)))
	}

	if len(linkValues) > 0 {
		w.Header().Add("Link", strings.Join(linkValues, ", "))
	}
}
