// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var errIncompleteURL = errors.New("URL must have both a scheme and a host")

// ParseURL parses urlStr as an absolute URL, trimming any trailing slash
// from its path. kind names the URL in error messages ("Dictionary API").
func ParseURL(urlStr, kind string) (*url.URL, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(urlStr))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s URL: %w", kind, err)
	}

	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("%s URL %q is invalid: %w, e.g. https://example.com", kind, urlStr, errIncompleteURL)
	}

	parsedURL.Path = strings.TrimSuffix(parsedURL.Path, "/")

	return parsedURL, nil
}

// GetQueryParam retrieves the trimmed value of a query parameter by name.
//
// If the parameter is absent or blank, it returns the provided default value or an empty string.
func GetQueryParam(r *http.Request, name string, defaultValue ...string) string {
	return firstNonBlank(r.URL.Query().Get(name), defaultValue)
}

// GetFormValue retrieves the value of a form parameter by name.
//
// Unlike the other getters the value is not trimmed, since markup source
// submitted through forms is whitespace sensitive.
func GetFormValue(r *http.Request, name string, defaultValue ...string) string {
	if err := r.ParseForm(); err == nil {
		if v := r.FormValue(name); v != "" {
			return v
		}
	}

	return firstNonBlank("", defaultValue)
}

// GetPathVar retrieves the trimmed value of a path variable by name.
func GetPathVar(r *http.Request, name string, defaultValue ...string) string {
	return firstNonBlank(r.PathValue(name), defaultValue)
}

func firstNonBlank(v string, defaults []string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}

	if len(defaults) > 0 {
		return defaults[0]
	}

	return ""
}

// GetOriginFromRequest returns the origin (scheme + host) of an HTTP request.
//
// X-Forwarded-Proto wins over the TLS state of the connection.
func GetOriginFromRequest(r *http.Request) string {
	scheme := "http"

	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host
}

// EntryPath returns the path of the entry page for word under prefix.
// The word is path-escaped so that words containing a slash stay one segment.
func EntryPath(prefix, word string) string {
	return prefix + url.PathEscape(word)
}

// SanitizeReturnPath ensures that s is a same-origin absolute path.
// Returns "" if the value is unsafe; callers should fall back to "/".
func SanitizeReturnPath(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.HasPrefix(s, "/") {
		return ""
	}

	// Browsers treat "//host" and "/\host" as scheme-relative.
	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, `/\`) || strings.Contains(s, "://") {
		return ""
	}

	return s
}
