// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/dialectfe/dialectfe/core/entry"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/markup"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
)

// renderPage renders c for a request to target and parses the result.
func renderPage(t *testing.T, target string, c templ.Component, edit ...func(*request_context.RequestContext)) *goquery.Document {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := request_context.WithRequestContext(r.Context(), r)

	for _, fn := range edit {
		fn(request_context.FromContext(ctx))
	}

	var b strings.Builder
	require.NoError(t, c.Render(ctx, &b))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)

	return doc
}

func loggedIn(rc *request_context.RequestContext) {
	rc.CommonData.LoggedIn = true
	rc.CommonData.Username = "ngo"
}

func TestLayout(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/about", About(AboutData{Title: "About", Variant: "brace", Passes: []string{"brace-b", "lines"}}))

	assert.Equal(t, "About · DialectFE", doc.Find("title").Text())
	assert.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "/about", doc.Find("nav li.active a").AttrOr("href", ""))
	assert.Equal(t, "/self/login?loginReturnPath=%2Fabout", doc.Find(".account a").AttrOr("href", ""))
	assert.Contains(t, doc.Find("dd").Text(), "brace-b → lines")

	doc = renderPage(t, "/about", About(AboutData{Title: "About"}), loggedIn)
	assert.Equal(t, "Welcome, ngo", doc.Find(".account span").Text())
	assert.Equal(t, "/about", doc.Find(`.account input[name="returnPath"]`).AttrOr("value", ""))
}

func TestIndex_RendersMottoMarkup(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/", Index(IndexData{}))

	assert.Equal(t, "DialectFE", doc.Find("title").Text())
	assert.Equal(t, "Dialects are the history we can hear", doc.Find("h1").Text())
	assert.Equal(t, "/", doc.Find("nav li.active a").AttrOr("href", ""))
	assert.Equal(t, 2, doc.Find("form.search").Length(), "header and page search")
}

func TestEntry(t *testing.T) {
	t.Parallel()

	data := EntryData{
		Title:       "蛐",
		Description: "蛐 虫名",
		Entry: &entry.Entry{
			Word:    "蛐",
			Text:    "{b 蛐} [qiù]\n{l 蛐蛐}",
			Dialect: "南昌话",
			Related: []string{"蛐蛐", "蛆"},
		},
		Previews: []entry.Preview{{Word: "蛐蛐", Text: "{z 虫}"}},
	}

	doc := renderPage(t, "/entry/蛐", Entry(data))

	assert.Equal(t, "蛐 虫名", doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	assert.Equal(t, "蛐", doc.Find(".entry-text b").Text())
	assert.Equal(t, "/entry/蛐蛐", doc.Find(".entry-text a.dict-link").AttrOr("href", ""))
	assert.Equal(t, "南昌话", doc.Find(".dialect").Text())
	assert.Zero(t, doc.Find(`form[action$="/refresh"]`).Length(), "refresh needs a login")

	related := doc.Find(".related li")
	require.Equal(t, 1, related.Length())
	assert.Equal(t, "虫", related.Find(".preview small").Text())

	doc = renderPage(t, "/entry/蛐", Entry(data), loggedIn)
	assert.Equal(t, "/entry/%E8%9B%90/refresh", doc.Find(`form[action$="/refresh"]`).AttrOr("action", ""))
}

func TestEntry_NoRelated(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/entry/x", Entry(EntryData{Entry: &entry.Entry{Word: "x", Text: "x"}}))

	assert.Equal(t, "No data", doc.Find(".related p").Text())
}

func TestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    ErrorData
		dev     bool
		message string
	}{
		{"not found", ErrorData{StatusCode: http.StatusNotFound}, false, "Page not found"},
		{"upstream down", ErrorData{StatusCode: http.StatusBadGateway, Error: errors.New("dial tcp")}, false,
			"The dictionary service is unavailable, please try again later."},
		{"internal", ErrorData{StatusCode: http.StatusInternalServerError, Error: errors.New("boom")}, true, "Something went wrong"},
		{"user error", ErrorData{
			StatusCode: http.StatusNotFound,
			Error:      i18n.NewUserError(context.Background(), "Entry not found: {{.Word}}", "Word", "蛆"),
		}, false, "Entry not found: 蛆"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := renderPage(t, "/x", Error(tt.data), func(rc *request_context.RequestContext) {
				rc.CommonData.DevMode = tt.dev
			})

			assert.Equal(t, tt.message, doc.Find(".error p").Text())

			if tt.dev {
				assert.Equal(t, tt.data.Error.Error(), doc.Find(".error pre").Text())
			} else {
				assert.Zero(t, doc.Find(".error pre").Length())
			}
		})
	}
}

func TestLogin_EscapesInput(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/self/login", Login(LoginData{
		Username:        `"><script>`,
		Error:           "Wrong username or password.",
		LoginReturnPath: "/entry/x",
	}))

	assert.Equal(t, `"><script>`, doc.Find(`input[name="username"]`).AttrOr("value", ""))
	assert.Zero(t, doc.Find("script").Length())
	assert.Equal(t, "/entry/x", doc.Find(`input[name="loginReturnPath"]`).AttrOr("value", ""))
	assert.Equal(t, "Wrong username or password.", doc.Find(".error").Text())
	assert.Equal(t, "/", doc.Find("form.login a").AttrOr("href", ""))
}

func TestUnauthorized(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/entry/x/refresh", Unauthorized(UnauthorizedData{
		NoAuthReturnPath: "/entry/x",
		LoginReturnPath:  "/entry/x",
	}))

	links := doc.Find(".unauthorized a")
	require.Equal(t, 2, links.Length())
	assert.Equal(t, "/self/login?loginReturnPath=%2Fentry%2Fx&noAuthReturnPath=%2Fentry%2Fx", links.First().AttrOr("href", ""))
	assert.Equal(t, "/entry/x", links.Last().AttrOr("href", ""))
}

func TestPlayground(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/test?text=x&variant=brace", Playground(PlaygroundData{
		Source:   "{b <x>}",
		Variant:  markup.DelimiterPair,
		Rendered: "<b>x</b>",
		Plain:    "x",
	}))

	assert.Equal(t, "{b <x>}", doc.Find("textarea").Text())
	assert.Equal(t, "x", doc.Find(".output b").Text())
	assert.Equal(t, "delimiter", doc.Find(`input[name="variant"]`).AttrOr("value", ""))

	current := doc.Find(`.variants a[aria-current]`)
	assert.Equal(t, "delimiter", current.Text())
	assert.Equal(t, "/test?text=x&variant=delimiter", current.AttrOr("href", ""))
}

func TestSettings(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/settings", nil)
	r.AddCookie(&http.Cookie{Name: "Lang", Value: "zh-Hant"})
	r.AddCookie(&http.Cookie{Name: "Access", Value: "v4.public.secret"})

	ctx := request_context.WithRequestContext(r.Context(), r)

	var b strings.Builder
	require.NoError(t, Settings(SettingsData{
		Languages: []LanguageOption{
			{Tag: "en", Name: "English"},
			{Tag: "zh-Hant", Name: "繁體中文", Selected: true},
		},
	}).Render(ctx, &b))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)

	assert.Equal(t, "zh-Hant", doc.Find("option[selected]").AttrOr("value", ""))
	assert.Equal(t, "•••", doc.Find(".cookies tr").First().Find("td").Text(), "the session is never shown")
	assert.Equal(t, "zh-Hant", doc.Find(".cookies tr").Last().Find("td").Text())
	assert.NotContains(t, b.String(), "v4.public.secret")
}
