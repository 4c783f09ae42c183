// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"codeberg.org/dialectfe/dialectfe/assets/views"
	"codeberg.org/dialectfe/dialectfe/core/cookie"
	"codeberg.org/dialectfe/dialectfe/core/untrusted"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// autoLanguage lets Accept-Language decide.
const autoLanguage = "auto"

func setLanguage(w http.ResponseWriter, r *http.Request) error {
	lang := utils.GetFormValue(r, "lang")

	if lang == "" || strings.EqualFold(lang, autoLanguage) {
		untrusted.ClearCookie(w, r, cookie.LangCookie)

		return nil
	}

	if !i18n.IsSupported(lang) {
		return withStatus(http.StatusBadRequest,
			i18n.NewUserError(r.Context(), "Unsupported language: {{.Lang}}", "Lang", lang))
	}

	untrusted.SetCookie(w, r, cookie.LangCookie, language.Make(lang).String())

	return nil
}

//nolint:unparam
func resetAll(w http.ResponseWriter, r *http.Request) error {
	untrusted.ClearCookie(w, r, cookie.LangCookie)

	return nil
}

var settingsActions = map[string]func(http.ResponseWriter, *http.Request) error{
	"lang":      setLanguage,
	"reset_all": resetAll,
}

// languageOptions lists "auto" followed by tags, each named in its own language.
func languageOptions(ctx context.Context, current string, tags []language.Tag) []views.LanguageOption {
	opts := make([]views.LanguageOption, 0, len(tags)+1)
	opts = append(opts, views.LanguageOption{
		Tag:      autoLanguage,
		Name:     i18n.Tr(ctx, "Automatic (browser language)"),
		Selected: current == "",
	})

	for _, t := range tags {
		name := display.Self.Name(t)
		if name == "" {
			name = t.String()
		}

		opts = append(opts, views.LanguageOption{
			Tag:      t.String(),
			Name:     name,
			Selected: t.String() == current,
		})
	}

	return opts
}

// SettingsPage is the handler for GET /settings.
func SettingsPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")

	pageData := views.SettingsData{
		Title:     i18n.Tr(r.Context(), "Settings"),
		Languages: languageOptions(r.Context(), untrusted.GetLang(r), i18n.Languages()),
	}

	if utils.GetQueryParam(r, "saved") != "" {
		pageData.Message = i18n.Tr(r.Context(), "Settings saved.")
	}

	return views.Settings(pageData).Render(r.Context(), w)
}

// SettingsPOST is the handler for POST /settings/{action}.
func SettingsPOST(w http.ResponseWriter, r *http.Request) error {
	action, ok := settingsActions[utils.GetPathVar(r, "action")]
	if !ok {
		return withStatus(http.StatusNotFound,
			i18n.NewUserError(r.Context(), "No such setting is available."))
	}

	if err := action(w, r); err != nil {
		return err
	}

	http.Redirect(w, r, returnPathOr(r, "returnPath", "/settings?saved=1"), http.StatusSeeOther)

	return nil
}
