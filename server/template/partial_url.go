// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This file provides utilities for manipulating URL paths and query parameters.
*/
package template

import (
	"net/url"
	"sort"
	"strings"
)

// UnfinishedQuery builds a URL string that keeps every non-empty query
// parameter of urlStr except key, and ends with "key=" so that a value can be
// appended to it, e.g. by a variant switcher.
func UnfinishedQuery(urlStr, key string, excludeKeys ...string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		// treat the entire string as a path
		u = &url.URL{Path: urlStr}
	}

	exclude := make(map[string]bool, len(excludeKeys)+1)
	exclude[key] = true

	for _, k := range excludeKeys {
		exclude[k] = true
	}

	query := u.Query()

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var b strings.Builder

	b.WriteString(u.EscapedPath())

	sep := "?"

	for _, k := range keys {
		if exclude[k] {
			continue
		}

		v := query.Get(k)
		if v == "" {
			continue
		}

		b.WriteString(sep + url.QueryEscape(k) + "=" + url.QueryEscape(v))

		sep = "&"
	}

	b.WriteString(sep + url.QueryEscape(key) + "=")

	return b.String()
}

// WithQuery is UnfinishedQuery with value appended.
func WithQuery(urlStr, key, value string) string {
	return UnfinishedQuery(urlStr, key) + url.QueryEscape(value)
}
