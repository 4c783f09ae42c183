// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/dialectfe/dialectfe/assets/views"
	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/i18n"
)

// AboutPage is the handler for the /about page.
func AboutPage(w http.ResponseWriter, r *http.Request) error {
	setPublicCache(w, r)

	renderer := config.Global.Renderer()

	pageData := views.AboutData{
		Title:         i18n.Tr(r.Context(), "About"),
		Version:       config.BuildVersion,
		Revision:      config.Global.Build.Revision(),
		StartedAt:     config.Global.Instance.StartingTime,
		RepoURL:       config.Global.Instance.RepoURL,
		InDevelopment: config.Global.Development.InDevelopment,
		Variant:       renderer.Variant().String(),
		Passes:        renderer.Passes(),
	}

	return views.About(pageData).Render(r.Context(), w)
}

// ContactPage is the handler for the /contact page.
func ContactPage(w http.ResponseWriter, r *http.Request) error {
	setPublicCache(w, r)

	return views.Contact(views.ContactData{
		Title:   i18n.Tr(r.Context(), "Contact"),
		RepoURL: config.Global.Instance.RepoURL,
	}).Render(r.Context(), w)
}
