// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commondata

import (
	"net/http"

	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/core/cookie"
	"codeberg.org/dialectfe/dialectfe/core/untrusted"
	"codeberg.org/dialectfe/dialectfe/markup"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// PageCommonData holds common variables accessible in templates and handlers.
//
// It is populated for each request and attached to the
// requestcontext.RequestContext. The session fields are filled in later by
// middleware.WithSession.
//
// Usage:
//
//	rc := requestcontext.FromRequest(r)
//	cd := rc.CommonData
//	// cd.LoggedIn, cd.Username, cd.Lang, ...
type PageCommonData struct {
	// BaseURL is the origin URL (scheme + host) of the current request.
	BaseURL string

	// CurrentPath is the URL path from request (e.g., "/entry/蛐").
	CurrentPath string

	// CurrentPathWithParams is the full request URI including query parameters.
	CurrentPathWithParams string

	// LoggedIn is true once the session token has been confirmed by the dictionary API.
	LoggedIn bool

	// Username of the logged in user; empty otherwise.
	Username string

	// Token is the dictionary API token carried by the session cookie.
	// Only set when LoggedIn is true.
	Token string

	// Lang is the BCP 47 tag of the interface locale chosen for this request.
	Lang string

	// Queries is the URL query parameters (first value only for each key).
	Queries map[string]string

	// CookieListOrdered lists the DialectFE cookies in defined order for the settings page.
	// The session cookie value is never exposed here.
	CookieListOrdered []CookieEntry

	// LinkPrefix is the path prefix used for entry links in rendered markup.
	LinkPrefix string

	RepoURL   string
	Version   string
	Revision  string
	DevMode   bool
	StartedAt string
}

// CookieEntry is one row of PageCommonData.CookieListOrdered.
type CookieEntry struct {
	K   cookie.CookieName
	V   string
	Set bool
}

// PopulatePageCommonData fills the PageCommonData struct from the request.
func PopulatePageCommonData(r *http.Request, data *PageCommonData) {
	data.BaseURL = utils.GetOriginFromRequest(r)
	data.CurrentPath = r.URL.Path
	data.CurrentPathWithParams = r.URL.RequestURI()

	data.Queries = make(map[string]string)

	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			data.Queries[k] = v[0]
		}
	}

	data.CookieListOrdered = make([]CookieEntry, 0, len(cookie.AllCookieNames))

	for _, name := range cookie.AllCookieNames {
		val := untrusted.GetCookie(r, name)
		entry := CookieEntry{K: name, Set: val != ""}

		if !cookie.IsHttpOnly(name) {
			entry.V = val
		}

		data.CookieListOrdered = append(data.CookieListOrdered, entry)
	}

	data.LinkPrefix = config.Global.Markup.LinkTargetPrefix
	if data.LinkPrefix == "" {
		data.LinkPrefix = markup.DefaultLinkTargetPrefix
	}

	data.RepoURL = config.Global.Instance.RepoURL
	data.Version = config.BuildVersion
	data.Revision = config.Global.Build.Revision()
	data.DevMode = config.Global.Development.InDevelopment
	data.StartedAt = config.Global.Instance.StartingTime
}
