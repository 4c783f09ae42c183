// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/dialectfe/dialectfe/i18n"
)

// htmlWriter writes a page, remembering the first error so that callers can
// write a whole block without checking each step.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)

		return h.err
	})
}

func (h *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}

		_, h.err = io.WriteString(h.w, p)
	}
}

// text writes s escaped.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// tr writes the translation of msgid, escaped.
func (h *htmlWriter) tr(msgid i18n.MsgKey, kv ...any) {
	h.text(i18n.Tr(h.ctx, string(msgid), kv...))
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href writes an href attribute, refusing URLs with unsafe schemes.
func (h *htmlWriter) href(u string) {
	h.attr("href", string(templ.URL(u)))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

// link writes <a href="u">label</a> with label translated.
func (h *htmlWriter) link(u string, msgid i18n.MsgKey) {
	h.raw("<a")
	h.href(u)
	h.raw(">")
	h.tr(msgid)
	h.raw("</a>")
}

func (h *htmlWriter) hidden(name, value string) {
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(">")
}
