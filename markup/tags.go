// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package markup

import (
	"regexp"
)

// tagKey is the single letter that selects a brace tag's behaviour.
type tagKey byte

// Brace tag keys, in the order their passes run.
const (
	keyBold       tagKey = 'b'
	keyAnnotation tagKey = 'z'
	keyLink       tagKey = 'l'
	keyLiteral    tagKey = 't'
)

var braceKeyOrder = []tagKey{keyBold, keyAnnotation, keyLink, keyLiteral}

// jsSpace matches what the entry authoring tools treat as whitespace after a
// tag key. It is wider than RE2's \s so that an ideographic space (U+3000)
// between the key and the content still forms a tag.
const jsSpace = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// braceTagRegexps holds one compiled pattern per key: "{k", at least one
// space, then a non-empty run of anything but "}".
var braceTagRegexps = map[tagKey]*regexp.Regexp{
	keyBold:       braceTagRegexp(keyBold),
	keyAnnotation: braceTagRegexp(keyAnnotation),
	keyLink:       braceTagRegexp(keyLink),
	keyLiteral:    braceTagRegexp(keyLiteral),
}

func braceTagRegexp(key tagKey) *regexp.Regexp {
	return regexp.MustCompile(`\{` + string(rune(key)) + jsSpace + `+([^}]+)\}`)
}

// braceTagPass returns the pass that rewrites every {key content} tag.
func braceTagPass(key tagKey, styles Styles, linkPrefix string) pass {
	re := braceTagRegexps[key]

	var render func(content string) string

	switch key {
	case keyBold:
		render = func(content string) string {
			return styles.wrap(RoleBold, "", content)
		}
	case keyAnnotation:
		render = func(content string) string {
			return styles.wrap(RoleMutedAnnotation, "", content)
		}
	case keyLink:
		render = func(content string) string {
			return styles.wrap(RoleDictLink, linkPrefix+content, content)
		}
	case keyLiteral:
		render = func(content string) string {
			return content
		}
	}

	return pass{
		name: "brace-" + string(rune(key)),
		apply: func(s string) string {
			return replaceSubmatch(re, s, render)
		},
	}
}

// replaceSubmatch replaces each match of re in s with render(first group).
func replaceSubmatch(re *regexp.Regexp, s string, render func(string) string) string {
	indexes := re.FindAllStringSubmatchIndex(s, -1)
	if indexes == nil {
		return s
	}

	out := make([]byte, 0, len(s)+len(indexes)*64)
	last := 0

	for _, m := range indexes {
		out = append(out, s[last:m[0]]...)
		out = append(out, render(s[m[2]:m[3]])...)
		last = m[1]
	}

	out = append(out, s[last:]...)

	return string(out)
}
