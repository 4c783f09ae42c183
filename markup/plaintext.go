// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText returns the text content of a rendered fragment.
//
// Elements are dropped, entities are decoded and each <br> becomes a line
// feed. It is meant for page titles and meta descriptions, not for display.
func PlainText(rendered string) string {
	z := html.NewTokenizer(strings.NewReader(rendered))

	var b strings.Builder

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF; a strings.Reader has no other read errors.
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte('\n')
			}
		case html.EndTagToken, html.CommentToken, html.DoctypeToken:
		}
	}
}
