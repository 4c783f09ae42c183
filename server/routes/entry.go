// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/dialectfe/dialectfe/assets/views"
	"codeberg.org/dialectfe/dialectfe/core/entry"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
	"codeberg.org/dialectfe/dialectfe/server/template"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// EntryRoute is where this server serves entry pages, whatever prefix
// rendered links use.
const EntryRoute = "/entry/"

// maxDescriptionLength bounds the meta description, in runes.
const maxDescriptionLength = 160

// EntryPage is the handler for /entry/{word}.
func EntryPage(w http.ResponseWriter, r *http.Request) error {
	word := utils.GetPathVar(r, "word")

	e, err := entry.Fetch(r.Context(), word, r.Header)
	if errors.Is(err, entry.ErrNotFound) || errors.Is(err, entry.ErrEmptyWord) {
		return withStatus(http.StatusNotFound,
			i18n.NewUserError(r.Context(), "Entry not found: {{.Word}}", "Word", word))
	}

	if err != nil {
		return err
	}

	previews, err := entry.FetchPreviews(r.Context(), e, r.Header)
	if err != nil {
		log.Ctx(r.Context()).Warn().
			Str("sys", "routes").
			Str("word", e.Word).
			Err(err).
			Msg("Failed to fetch related entries")

		previews = nil
	}

	setPublicCache(w, r)
	prefetchRelated(w, r, previews)

	pageData := views.EntryData{
		Title:       e.Word,
		Description: template.Truncate(template.PlainText(e.Text), maxDescriptionLength),
		Entry:       e,
		Previews:    previews,
	}

	return views.Entry(pageData).Render(r.Context(), w)
}

// EntryRefresh drops the cached API response for an entry so that the next
// view fetches it again. It needs a login.
func EntryRefresh(w http.ResponseWriter, r *http.Request) error {
	word := utils.GetPathVar(r, "word")
	page := utils.EntryPath(EntryRoute, word)

	if !request_context.FromRequest(r).CommonData.LoggedIn {
		return NewUnauthorizedError(page, page)
	}

	invalidated := entry.Forget(word)

	log.Ctx(r.Context()).Debug().
		Str("sys", "routes").
		Str("word", word).
		Int("invalidated", invalidated).
		Msg("Refreshed entry")

	http.Redirect(w, r, page, http.StatusSeeOther)

	return nil
}
