// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"

	"github.com/leonelquinteros/gotext"
)

// message is a single catalogue lookup.
type message struct {
	context string
	id      string
	plural  string
	n       int
	counted bool
}

// Tr translates msgid into the locale carried by ctx. kv are alternating
// placeholder names and values for the {{.Name}} fields of the text.
//
// Without a translation the msgid itself is used.
func Tr(ctx context.Context, msgid string, kv ...any) string {
	return translate(ctx, message{id: msgid}, kv)
}

// TrC is Tr with a disambiguating gettext context (pgettext).
func TrC(ctx context.Context, contextKey, msgid string, kv ...any) string {
	return translate(ctx, message{context: contextKey, id: msgid}, kv)
}

// TrN picks the plural form for n (ngettext).
func TrN(ctx context.Context, singular, plural string, n int, kv ...any) string {
	return translate(ctx, message{id: singular, plural: plural, n: n, counted: true}, kv)
}

// TrNC combines TrC and TrN (npgettext).
func TrNC(ctx context.Context, contextKey, singular, plural string, n int, kv ...any) string {
	return translate(ctx, message{context: contextKey, id: singular, plural: plural, n: n, counted: true}, kv)
}

func translate(ctx context.Context, m message, kv []any) string {
	data := placeholders(kv)
	loc, tag := resolveLocale(TagFrom(ctx))

	if tag != baseTag && loc != nil {
		if text, ok := m.lookup(loc); ok {
			return format(tag, text, data)
		}
	}

	text := m.untranslated()

	// msgids are the base locale's text, so only other locales can miss
	if tag != baseTag && strictMissingKeys() {
		reportMissing(tag, m)

		text = "⟦" + text + "⟧"
	}

	return format(tag, text, data)
}

// untranslated is the msgid, or the plural msgid when n calls for it.
func (m message) untranslated() string {
	if m.counted && m.n != 1 {
		return m.plural
	}

	return m.id
}

func (m message) lookup(loc *gotext.Locale) (string, bool) {
	switch {
	case m.counted && m.context != "":
		if loc.IsTranslatedNDC(poDomain, m.id, m.n, m.context) {
			return loc.GetNDC(poDomain, m.id, m.plural, m.n, m.context), true
		}
	case m.counted:
		if loc.IsTranslatedND(poDomain, m.id, m.n) {
			return loc.GetND(poDomain, m.id, m.plural, m.n), true
		}
	case m.context != "":
		if loc.IsTranslatedDC(poDomain, m.id, m.context) {
			return loc.GetDC(poDomain, m.id, m.context), true
		}
	default:
		if loc.IsTranslatedD(poDomain, m.id) {
			// msgids are not printf formats; the empty vars keep "%" literal.
			return loc.GetD(poDomain, m.id, noVars...), true
		}
	}

	return "", false
}

var noVars []any

// key is the message's identity in a .po file, "context EOT msgid".
func (m message) key() string {
	if m.context == "" {
		return m.id
	}

	return m.context + gotext.EotSeparator + m.id
}
