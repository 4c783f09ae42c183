// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
	"codeberg.org/dialectfe/dialectfe/server/template"
)

type IndexData struct {
	Title string
}

// Index is the home page: the motto and its Nanchang rendition, which
// carries a bracketed romanisation in entry markup.
func Index(data IndexData) templ.Component {
	return component(layout(data.Title, "", func(h *htmlWriter) {
		h.raw(`<section class="motto"><h1>`)
		h.tr("Dialects are the history we can hear")
		h.raw(`</h1><p class="entry-text">`)
		h.component(template.FormattedText(i18n.Tr(h.ctx, "Nanchang dialect: dialects are the history we can hear")))
		h.raw("</p></section>")
		searchForm(h, "")
	}))
}

type AboutData struct {
	Title         string
	Version       string
	Revision      string
	StartedAt     string
	RepoURL       string
	InDevelopment bool
	Variant       string
	Passes        []string
}

func About(data AboutData) templ.Component {
	return component(layout(data.Title, "", func(h *htmlWriter) {
		h.raw("<h1>")
		h.tr("About")
		h.raw("</h1><dl><dt>Version</dt><dd>")
		h.text(data.Version + " (" + data.Revision + ")")
		h.raw("</dd><dt>Started</dt><dd>")
		h.text(data.StartedAt)
		h.raw("</dd><dt>Markup</dt><dd>")
		h.text(data.Variant + ": " + strings.Join(data.Passes, " → "))
		h.raw("</dd>")

		if data.InDevelopment {
			h.raw("<dt>")
			h.tr("Developer mode")
			h.raw("</dt><dd>on</dd>")
		}

		h.raw("</dl>")

		if data.RepoURL != "" {
			h.raw("<p>")
			h.link(data.RepoURL, "Source code")
			h.raw("</p>")
		}
	}))
}

type ContactData struct {
	Title   string
	RepoURL string
}

func Contact(data ContactData) templ.Component {
	return component(layout(data.Title, "", func(h *htmlWriter) {
		h.raw("<h1>")
		h.tr("Contact")
		h.raw("</h1>")

		if data.RepoURL != "" {
			h.raw("<p>")
			h.link(data.RepoURL+"/issues", "Contact")
			h.raw("</p>")
		}
	}))
}

type LoginData struct {
	Title            string
	Username         string
	Error            string
	LoginReturnPath  string
	NoAuthReturnPath string
}

func Login(data LoginData) templ.Component {
	return component(layout(data.Title, "", func(h *htmlWriter) {
		h.raw("<h1>")
		h.tr("Log in")
		h.raw("</h1>")

		if data.Error != "" {
			h.raw(`<p class="error" role="alert">`)
			h.text(data.Error)
			h.raw("</p>")
		}

		h.raw(`<form class="login" method="post" action="/self/login">`)
		h.hidden("loginReturnPath", data.LoginReturnPath)
		h.hidden("noAuthReturnPath", data.NoAuthReturnPath)
		h.raw("<label>")
		h.tr("Username")
		h.raw(`<input name="username" autocomplete="username" required`)
		h.attr("value", data.Username)
		h.raw("></label><label>")
		h.tr("Password")
		h.raw(`<input type="password" name="password" autocomplete="current-password" required></label>`)
		h.raw(`<button type="submit">`)
		h.tr("Log in")
		h.raw("</button> ")
		h.link(orRoot(data.NoAuthReturnPath), "Cancel")
		h.raw("</form>")
	}))
}

type UnauthorizedData struct {
	Title            string
	NoAuthReturnPath string
	LoginReturnPath  string
}

func Unauthorized(data UnauthorizedData) templ.Component {
	return component(layout(data.Title, "", func(h *htmlWriter) {
		h.raw(`<section class="unauthorized"><p>`)
		h.tr("You need to log in to do that.")
		h.raw("</p>")
		h.link("/self/login?"+url.Values{
			"loginReturnPath":  {data.LoginReturnPath},
			"noAuthReturnPath": {data.NoAuthReturnPath},
		}.Encode(), "Log in")
		h.raw(" ")
		h.link(orRoot(data.NoAuthReturnPath), "Cancel")
		h.raw("</section>")
	}))
}

type ErrorData struct {
	Title      string
	Error      error
	StatusCode int
}

func Error(data ErrorData) templ.Component {
	return component(layout(data.Title, "", func(h *htmlWriter) {
		h.raw(`<section class="error"><h1>`)
		h.text(strconv.Itoa(data.StatusCode))
		h.raw("</h1><p>")
		h.text(errorMessage(h, data))
		h.raw("</p>")

		if data.Error != nil && request_context.FromContext(h.ctx).CommonData.DevMode {
			h.raw("<pre>")
			h.text(data.Error.Error())
			h.raw("</pre>")
		}

		h.raw("</section>")
	}))
}

func errorMessage(h *htmlWriter, data ErrorData) string {
	var userErr *i18n.UserError
	if errors.As(data.Error, &userErr) {
		return userErr.Error()
	}

	switch data.StatusCode {
	case http.StatusNotFound:
		return i18n.Tr(h.ctx, "Page not found")
	case http.StatusTooManyRequests:
		return i18n.Tr(h.ctx, "Too many requests, please try again later.")
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return i18n.Tr(h.ctx, "The dictionary service is unavailable, please try again later.")
	default:
		return i18n.Tr(h.ctx, "Something went wrong")
	}
}

func orRoot(path string) string {
	if path == "" {
		return "/"
	}

	return path
}
