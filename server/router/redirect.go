// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"

	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// redirectWithQueryParam redirects to targetPath followed by the
// path-escaped value of a query parameter, or to the home page when the
// parameter is blank.
//
// Example:   /entry?word=<word>   ->   /entry/<word>
func redirectWithQueryParam(targetPath, preservedParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := utils.GetQueryParam(r, preservedParam)
		if value == "" {
			http.Redirect(w, r, "/", http.StatusFound)

			return
		}

		http.Redirect(w, r, utils.EntryPath(targetPath, value), http.StatusFound)
	}
}
