// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// compiled holds parsed templates keyed by their source text.
var compiled sync.Map

// placeholders turns alternating name, value arguments into template data.
// A malformed list is a programming error and panics.
func placeholders(kv []any) map[string]any {
	if len(kv)%2 != 0 {
		panic("i18n: placeholders must be name, value pairs")
	}

	if len(kv) == 0 {
		return nil
	}

	data := make(map[string]any, len(kv)/2)

	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic("i18n: placeholder name must be a string")
		}

		data[name] = kv[i+1]
	}

	return data
}

// format fills the {{.Name}} fields of text. Text that fails to parse or
// execute is returned unformatted, or bracketed in strict mode.
func format(tag language.Tag, text string, data map[string]any) string {
	if !strings.Contains(text, "{{") {
		return text
	}

	tmpl, err := parsed(text)
	if err == nil {
		var sb strings.Builder
		if err = tmpl.Execute(&sb, data); err == nil {
			return sb.String()
		}
	}

	if strictMissingKeys() {
		return "⟦" + text + "⟧"
	}

	Logger.Error().
		Err(err).
		Stringer("locale", tag).
		Str("text", text).
		Msg("Failed to format translation")

	return text
}

func parsed(text string) (*template.Template, error) {
	if t, ok := compiled.Load(text); ok {
		return t.(*template.Template), nil
	}

	tmpl, err := template.New("").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, err
	}

	compiled.Store(text, tmpl)

	return tmpl, nil
}
