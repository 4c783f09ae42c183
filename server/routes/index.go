// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/dialectfe/dialectfe/assets/views"
)

// IndexPage is the handler for the home page.
func IndexPage(w http.ResponseWriter, r *http.Request) error {
	setPublicCache(w, r)

	return views.Index(views.IndexData{}).Render(r.Context(), w)
}
