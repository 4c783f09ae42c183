// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/dialectfe/dialectfe/core/cookie"
	"codeberg.org/dialectfe/dialectfe/core/untrusted"
)

// LangParam is the query parameter that overrides the language for one
// request. The value "auto" means "use Accept-Language only".
const LangParam = "lang"

type tagKey struct{}

// WithTag returns a copy of ctx carrying t.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey{}, t)
}

// TagFrom returns the tag stored by WithTag, or the default locale. A nil ctx
// is allowed.
func TagFrom(ctx context.Context) language.Tag {
	if ctx == nil {
		return defaultTag
	}

	t, ok := ctx.Value(tagKey{}).(language.Tag)
	if !ok || t == (language.Tag{}) {
		return defaultTag
	}

	return t
}

// FromRequest picks the supported locale r asks for. The query parameter
// beats the Lang cookie, which beats Accept-Language.
func FromRequest(r *http.Request) language.Tag {
	if r == nil || matcher == nil {
		return defaultTag
	}

	tag, _ := language.MatchStrings(matcher, preferences(r)...)

	return supportedMatch(tag)
}

// preferences lists the language hints of r, strongest first.
func preferences(r *http.Request) []string {
	prefs := make([]string, 0, 3)

	if q := r.URL.Query().Get(LangParam); !strings.EqualFold(q, "auto") {
		for _, hint := range []string{q, untrusted.GetCookie(r, cookie.LangCookie)} {
			if hint != "" {
				prefs = append(prefs, hint)
			}
		}
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		prefs = append(prefs, al)
	}

	return prefs
}

// WithRequest installs the locale of r in ctx.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return WithTag(ctx, FromRequest(r))
}
