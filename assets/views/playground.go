// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"strings"

	"github.com/a-h/templ"

	"codeberg.org/dialectfe/dialectfe/markup"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
	"codeberg.org/dialectfe/dialectfe/server/template"
)

type PlaygroundData struct {
	Title    string
	Source   string
	Variant  markup.Variant
	Rendered string
	Plain    string
	Passes   []string
}

var playgroundVariants = []markup.Variant{markup.BraceAndBracket, markup.DelimiterPair}

// Playground lets authors try entry markup. The form also posts to
// /api/render when scripts want a live preview.
func Playground(data PlaygroundData) templ.Component {
	return component(layout(data.Title, "", func(h *htmlWriter) {
		cd := request_context.FromContext(h.ctx).CommonData

		h.raw("<h1>")
		h.tr("Markup playground")
		h.raw(`</h1><nav class="variants">`)

		for _, v := range playgroundVariants {
			h.raw("<a")
			h.href(template.WithQuery(cd.CurrentPathWithParams, "variant", v.String()))

			if v == data.Variant {
				h.raw(` aria-current="true"`)
			}

			h.raw(">")
			h.text(v.String())
			h.raw("</a> ")
		}

		h.raw(`</nav><form class="playground" method="post" action="/test">`)
		h.hidden("variant", data.Variant.String())
		h.raw(`<textarea name="text" rows="8">`)
		h.text(data.Source)
		h.raw(`</textarea><button type="submit">`)
		h.tr("Render")
		h.raw(`</button></form><section class="output"><div class="entry-text">`)
		h.raw(data.Rendered)
		h.raw("</div><h2>")
		h.tr("Plain text")
		h.raw("</h2><pre>")
		h.text(data.Plain)
		h.raw("</pre><p><code>")
		h.text(strings.Join(data.Passes, " → "))
		h.raw("</code></p></section>")
	}))
}
