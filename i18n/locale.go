// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"slices"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// BaseLocale is the language of the msgids. It needs no catalogue.
const BaseLocale = "en"

var (
	// baseTag is the canonical tag for BaseLocale.
	baseTag = language.Make(BaseLocale)

	// defaultTag is the tag used when nothing in a request matches.
	// Setup replaces it with the configured default locale.
	defaultTag = baseTag
)

// Languages returns the list of supported language tags derived from
// the loaded gettext catalogs.
//
// The returned slice is a copy, is sorted by tag string, and is safe to retain.
//
// Setup must be called successfully before using Languages; otherwise it panics.
func Languages() []language.Tag {
	if matcher == nil {
		panic("i18n: Setup must be called before calling Languages")
	}

	out := slices.Clone(supportedTags)
	slices.SortFunc(out, func(a, b language.Tag) int { return strings.Compare(a.String(), b.String()) })

	return out
}

// DefaultTag returns the locale used when a request expresses no usable preference.
func DefaultTag() language.Tag {
	return defaultTag
}

// IsSupported reports whether s names one of the loaded locales exactly.
func IsSupported(s string) bool {
	t, err := language.Parse(s)
	if err != nil {
		return false
	}

	return slices.Contains(supportedTags, t)
}

// resolveLocale returns the loaded catalogue closest to t with its tag.
// Before Setup there is no catalogue and the tag is the default.
func resolveLocale(t language.Tag) (*gotext.Locale, language.Tag) {
	if matcher == nil {
		return nil, defaultTag
	}

	matched := supportedMatch(t)

	return localesByTag[matched.String()], matched
}

// supportedMatch maps t onto supportedTags. The matcher's own result may carry
// a -u-rg extension, which the index avoids.
func supportedMatch(t language.Tag) language.Tag {
	_, i, _ := matcher.Match(t)

	return supportedTags[i]
}
