// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views holds the page components of the web interface.

Every page is a [templ.Component]. Text is escaped on the way out except for
entry markup, which goes through template.FormattedText and is injected as
rendered HTML. UI strings are msgids translated with the i18n package using
the language stored in the render context.
*/
package views
