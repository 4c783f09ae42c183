// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This package defines the cookie names used by this application.
*/
package cookie

type CookieName string

// NOTE: We don't use the `__Host-` prefix so that sessions keep working on
// plain HTTP deployments where the localhost exemption doesn't apply.
const (
	// paseto v4.public token carrying the username and the dictionary API token
	AccessCookie CookieName = "Access"

	// LangCookie holds the interface locale chosen on the settings page.
	LangCookie CookieName = "Lang"
)

// AllCookieNames defines all cookies that can be set by the user.
var AllCookieNames = []CookieName{
	AccessCookie,
	LangCookie,
}

// IsHttpOnly reports whether scripts must be denied access to the cookie.
func IsHttpOnly(name CookieName) bool {
	return name == AccessCookie
}
