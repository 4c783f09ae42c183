// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"io"
	"net/http"

	"codeberg.org/dialectfe/dialectfe/assets/views"
	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/markup"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// maxRenderBody bounds the form body of /api/render.
const maxRenderBody = 64 << 10

// crossOrigin rejects form posts that a browser sent from another site.
var crossOrigin = http.NewCrossOriginProtection()

// playgroundSamples is the source shown by /test before anything is typed.
var playgroundSamples = map[markup.Variant]string{
	markup.BraceAndBracket: "{b 蛐蛐}[tɕʰiu1-21 tɕʰiu1]\n{z 虫名}，即{l 蟋蟀}",
	markup.DelimiterPair:   "蛐蛐 //tɕʰiu tɕʰiu// --tɕʰiu˨˩--",
}

// requestRenderer returns the renderer for the request's variant field, or
// the configured renderer when the field is absent.
func requestRenderer(r *http.Request) (*markup.Renderer, error) {
	name := utils.GetFormValue(r, "variant")
	if name == "" {
		return config.Global.Renderer(), nil
	}

	variant, err := markup.ParseVariant(name)
	if err != nil {
		return nil, withStatus(http.StatusBadRequest,
			i18n.NewUserError(r.Context(), "Unknown markup variant: {{.Variant}}", "Variant", name))
	}

	return config.Global.RendererFor(variant), nil
}

// parseRenderForm checks that a render request comes from this site and
// parses its bounded form body.
func parseRenderForm(w http.ResponseWriter, r *http.Request) error {
	if err := crossOrigin.Check(r); err != nil {
		return withStatus(http.StatusForbidden,
			i18n.NewUserError(r.Context(), "Text can only be rendered from this site."))
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRenderBody)

	if err := r.ParseForm(); err != nil {
		return withStatus(http.StatusBadRequest,
			i18n.NewUserError(r.Context(), "The text is too long or malformed."))
	}

	return nil
}

// RenderPartial is the handler for POST /api/render.
//
// It renders the form field text and writes the bare fragment, or its text
// content when format=plain.
func RenderPartial(w http.ResponseWriter, r *http.Request) error {
	if err := parseRenderForm(w, r); err != nil {
		return err
	}

	renderer, err := requestRenderer(r)
	if err != nil {
		return err
	}

	rendered := renderer.Render(utils.GetFormValue(r, "text"))

	w.Header().Set("Cache-Control", "no-store")

	if utils.GetFormValue(r, "format") == "plain" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		_, err = io.WriteString(w, markup.PlainText(rendered))

		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, err = io.WriteString(w, rendered)

	return err
}

// PlaygroundPage is the handler for GET and POST /test.
//
// GET shows the sample for the chosen variant. Only posted text is rendered,
// so a link cannot place markup on a page of this site.
func PlaygroundPage(w http.ResponseWriter, r *http.Request) error {
	if r.Method == http.MethodPost {
		if err := parseRenderForm(w, r); err != nil {
			return err
		}
	}

	renderer, err := requestRenderer(r)
	if err != nil {
		return err
	}

	source := playgroundSamples[renderer.Variant()]

	if r.Method == http.MethodPost {
		source = r.PostFormValue("text")

		w.Header().Set("Cache-Control", "no-store")
	} else {
		setPublicCache(w, r)
	}

	rendered := renderer.Render(source)

	pageData := views.PlaygroundData{
		Title:    i18n.Tr(r.Context(), "Markup playground"),
		Source:   source,
		Variant:  renderer.Variant(),
		Rendered: rendered,
		Plain:    markup.PlainText(rendered),
		Passes:   renderer.Passes(),
	}

	return views.Playground(pageData).Render(r.Context(), w)
}
