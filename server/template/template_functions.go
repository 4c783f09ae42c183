// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package template

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/markup"
)

// FormattedText renders v as entry markup with the configured renderer and
// injects the resulting fragment verbatim.
//
// Strings are rendered; any other value is printed and escaped, and nil
// renders nothing. Entry text comes from the dictionary API and is trusted
// to contain only markup the renderer understands.
func FormattedText(v any) templ.Component {
	return FormattedTextWith(config.Global.Renderer(), v)
}

// FormattedTextWith is FormattedText with an explicit renderer.
func FormattedTextWith(renderer *markup.Renderer, v any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var out string

		switch rendered := renderer.RenderAny(v).(type) {
		case nil:
			return nil
		case string:
			out = rendered
		default:
			out = templ.EscapeString(fmt.Sprint(rendered))
		}

		_, err := io.WriteString(w, out)

		return err
	})
}

// PlainText renders s as entry markup and returns its text content on a
// single line, for titles and meta descriptions.
func PlainText(s string) string {
	return strings.Join(strings.Fields(markup.PlainText(config.Global.Renderer().Render(s))), " ")
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}

	return string(runes[:n-1]) + "…"
}

// IsFirstPathPart checks if the first part of the current path matches the given path.
func IsFirstPathPart(currentPath, pathToCheck string) bool {
	currentPath = strings.TrimRight(currentPath, "/")
	pathToCheck = strings.TrimRight(pathToCheck, "/")

	const maxPathParts = 3

	parts := strings.SplitN(currentPath, "/", maxPathParts)

	// parts[0] is the empty string before the leading slash
	const minPathParts = 2
	if len(parts) < minPathParts {
		return false
	}

	return "/"+parts[1] == pathToCheck
}

// RenderToString converts a templ.Component to its string representation.
//
// Handling errors in templates is awkward, so if an error occurs during rendering,
// it is formatted into a string and returned.
func RenderToString(ctx context.Context, c templ.Component) string {
	var buffer bytes.Buffer

	err := c.Render(ctx, &buffer)
	if err != nil {
		return fmt.Errorf("templ: failed to render component: %w", err).Error()
	}

	return buffer.String()
}
