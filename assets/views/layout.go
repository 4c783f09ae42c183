// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"net/url"

	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
	"codeberg.org/dialectfe/dialectfe/server/template"
	"codeberg.org/dialectfe/dialectfe/server/template/commondata"
)

const siteName = "DialectFE"

type navItem struct {
	path  string
	msgid i18n.MsgKey
}

var navItems = []navItem{
	{"/", "Home"},
	{"/test", "Markup playground"},
	{"/about", "About"},
	{"/contact", "Contact"},
	{"/settings", "Settings"},
}

// layout wraps body in the page shell.
func layout(title, description string, body func(h *htmlWriter)) func(h *htmlWriter) {
	return func(h *htmlWriter) {
		cd := request_context.FromContext(h.ctx).CommonData

		lang := cd.Lang
		if lang == "" {
			lang = i18n.TagFrom(h.ctx).String()
		}

		h.raw("<!DOCTYPE html>\n<html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")

		if title != "" {
			h.text(title + " · ")
		}

		h.text(siteName)
		h.raw("</title>")

		if description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", description)
			h.raw(">")
		}

		h.raw(`<link rel="stylesheet"`)
		h.attr("href", "/css/style.css?v="+url.QueryEscape(config.Global.Instance.FileServerCacheID))
		h.raw("></head><body>")

		header(h, cd)

		h.raw("<main>")
		body(h)
		h.raw("</main>")

		footer(h, cd)

		h.raw("</body></html>")
	}
}

func header(h *htmlWriter, cd commondata.PageCommonData) {
	h.raw(`<header><nav><ul>`)

	for _, item := range navItems {
		active := item.path == cd.CurrentPath ||
			(item.path != "/" && template.IsFirstPathPart(cd.CurrentPath, item.path))

		h.raw("<li")

		if active {
			h.raw(` class="active"`)
		}

		h.raw(">")
		h.link(item.path, item.msgid)
		h.raw("</li>")
	}

	h.raw("</ul></nav>")
	searchForm(h, "")
	h.raw(`<div class="account">`)

	if cd.LoggedIn {
		h.raw("<span>")
		h.tr("Welcome, {{.Name}}", "Name", cd.Username)
		h.raw(`</span><form method="post" action="/self/logout">`)
		h.hidden("returnPath", cd.CurrentPathWithParams)
		h.raw(`<button type="submit">`)
		h.tr("Log out")
		h.raw("</button></form>")
	} else {
		h.link("/self/login?"+url.Values{"loginReturnPath": {cd.CurrentPathWithParams}}.Encode(), "Log in")
	}

	h.raw("</div></header>")
}

func searchForm(h *htmlWriter, word string) {
	h.raw(`<form class="search" method="get" action="/entry" role="search"><input type="search" name="word" required`)
	h.attr("value", word)
	h.attr("placeholder", i18n.Tr(h.ctx, "Look up a word"))
	h.attr("aria-label", i18n.Tr(h.ctx, "Look up a word"))
	h.raw(`><button type="submit">`)
	h.tr("Search")
	h.raw("</button></form>")
}

func footer(h *htmlWriter, cd commondata.PageCommonData) {
	h.raw("<footer>")
	h.text(siteName + " " + cd.Version)

	if cd.RepoURL != "" {
		h.raw(" · ")
		h.link(cd.RepoURL, "Source code")
	}

	h.raw("</footer>")
}
