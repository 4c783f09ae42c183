// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n translates the interface of DialectFE using the gettext
catalogues under po/.

The msgid of every message is its English text, and English needs no
catalogue. Other locales are loaded by [Setup], one .po file each:

	i18n.Tr(ctx, "Search")
	i18n.TrC(ctx, "verb", "Search")
	i18n.TrN(ctx, "{{.N}} entry", "{{.N}} entries", n, "N", n)

Translations may use text/template fields, filled from the name, value
pairs after the msgid. Numbers are formatted by the caller.

The locale of a request is chosen once by [WithRequest] and read back with
[TagFrom]. Untranslated messages fall back to the msgid. With
internationalization.strictMissingKeys set they are logged once and shown
as ⟦msgid⟧ so gaps are visible in the UI.

Messages that are themselves dictionary markup, such as the bracketed
romanisation on the home page, are passed through package markup by the
views rather than written out directly.

cmd/i18n_extract finds the msgids by type: string constants passed to the
Tr functions or used as a [MsgKey].
*/
package i18n
