// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"

	"codeberg.org/dialectfe/dialectfe/core/cookie"
)

// GetAccessToken returns the raw signed session token from the Access cookie.
//
// The value is not verified here; see auth.Sessions.
func GetAccessToken(r *http.Request) string {
	return GetCookie(r, cookie.AccessCookie)
}

// GetLang returns the locale the user picked on the settings page.
func GetLang(r *http.Request) string {
	return GetCookie(r, cookie.LangCookie)
}
