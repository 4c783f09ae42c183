// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"github.com/a-h/templ"

	"codeberg.org/dialectfe/dialectfe/core/entry"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
	"codeberg.org/dialectfe/dialectfe/server/template"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

type EntryData struct {
	Title       string
	Description string
	Entry       *entry.Entry
	// Previews of the related entries that exist, in Entry.Related order.
	Previews []entry.Preview
}

// Entry renders one dictionary entry with its related entries.
func Entry(data EntryData) templ.Component {
	return component(layout(data.Title, data.Description, func(h *htmlWriter) {
		cd := request_context.FromContext(h.ctx).CommonData
		e := data.Entry

		h.raw(`<article class="entry"><h1>`)
		h.text(e.Word)
		h.raw("</h1>")

		if e.Dialect != "" {
			h.raw(`<p class="dialect">`)
			h.text(e.Dialect)
			h.raw("</p>")
		}

		h.raw(`<div class="entry-text">`)
		h.component(template.FormattedText(e.Text))
		h.raw("</div>")

		if cd.LoggedIn {
			h.raw(`<form method="post"`)
			h.attr("action", utils.EntryPath("/entry/", e.Word)+"/refresh")
			h.raw(`><button type="submit">`)
			h.tr("Refresh entry")
			h.raw("</button></form>")
		}

		h.raw(`</article><section class="related"><h2>`)
		h.tr("Related entries")
		h.raw("</h2>")

		if len(data.Previews) == 0 {
			h.raw("<p>")
			h.tr("No data")
			h.raw("</p></section>")

			return
		}

		h.raw("<ul>")

		for _, p := range data.Previews {
			h.raw("<li><a")
			h.href(utils.EntryPath(cd.LinkPrefix, p.Word))
			h.raw(">")
			h.text(p.Word)
			h.raw(`</a> <span class="preview">`)
			h.component(template.FormattedText(p.Text))
			h.raw("</span></li>")
		}

		h.raw("</ul></section>")
	}))
}
