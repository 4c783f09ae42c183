// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"net/http"
	"net/url"
)

// RequestOptions are parameters for Do.
type RequestOptions struct {
	Method string
	URL    string

	// Form is sent as an application/x-www-form-urlencoded body on POST.
	Form url.Values

	// IncomingHeaders are the headers of the user request that caused this
	// one; only Cache-Control and Accept-Language are consulted.
	IncomingHeaders http.Header

	// SkipCache bypasses the response cache for both reading and writing.
	SkipCache bool
}
