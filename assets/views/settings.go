// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"github.com/a-h/templ"

	"codeberg.org/dialectfe/dialectfe/server/request_context"
)

// LanguageOption is one choice of the language picker.
type LanguageOption struct {
	Tag      string
	Name     string
	Selected bool
}

type SettingsData struct {
	Title     string
	Languages []LanguageOption
	// Message is shown after a successful save.
	Message string
}

func Settings(data SettingsData) templ.Component {
	return component(layout(data.Title, "", func(h *htmlWriter) {
		cd := request_context.FromContext(h.ctx).CommonData

		h.raw("<h1>")
		h.tr("Settings")
		h.raw("</h1>")

		if data.Message != "" {
			h.raw(`<p class="notice" role="status">`)
			h.text(data.Message)
			h.raw("</p>")
		}

		h.raw(`<form method="post" action="/settings/lang"><label>`)
		h.tr("Language")
		h.raw(` <select name="lang">`)

		for _, opt := range data.Languages {
			h.raw("<option")
			h.attr("value", opt.Tag)

			if opt.Selected {
				h.raw(" selected")
			}

			h.raw(">")
			h.text(opt.Name)
			h.raw("</option>")
		}

		h.raw(`</select></label><button type="submit">`)
		h.tr("Save")
		h.raw(`</button></form><table class="cookies"><tbody>`)

		for _, c := range cd.CookieListOrdered {
			h.raw("<tr><th>")
			h.text(string(c.K))
			h.raw("</th><td>")

			switch {
			case c.V != "":
				h.text(c.V)
			case c.Set:
				h.text("•••")
			default:
				h.text("-")
			}

			h.raw("</td></tr>")
		}

		h.raw("</tbody></table>")
	}))
}
