// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package markup

import (
	"regexp"
	"strings"
)

var (
	// bracketRegexp matches "[" then a non-empty run of anything but "]" then "]".
	bracketRegexp = regexp.MustCompile(`\[([^\]]+)\]`)

	// legacyStripRegexp is the shortest "[...]" on one line. The excluded
	// characters are the line terminators of the original authoring tools.
	legacyStripRegexp = regexp.MustCompile(`\[([^\n\r\x{2028}\x{2029}]*?)\]`)
)

// bracketPass styles pronunciation brackets.
//
// With exactly one dash the content splits into a phonetic lead and a tone
// tail. The bracket characters stay in the output, inside the styled runs.
func bracketPass(styles Styles) pass {
	return pass{
		name: "bracket",
		apply: func(s string) string {
			return replaceSubmatch(bracketRegexp, s, func(inner string) string {
				if strings.Count(inner, "-") == 1 {
					lead, tail, _ := strings.Cut(inner, "-")

					return pronunciationRuns(styles, lead, tail)
				}

				return styles.wrap(RolePhoneticSerif, "", "["+inner+"]")
			})
		},
	}
}

// legacyBracketPass reproduces the bracket handling of older builds: any
// dash splits, and only the first two dash-separated pieces are kept.
func legacyBracketPass(styles Styles) pass {
	return pass{
		name: "bracket",
		apply: func(s string) string {
			return replaceSubmatch(bracketRegexp, s, func(inner string) string {
				if strings.Contains(inner, "-") {
					pieces := strings.Split(inner, "-")

					return pronunciationRuns(styles, pieces[0], pieces[1])
				}

				return styles.wrap(RolePhoneticSerif, "", "["+inner+"]")
			})
		},
	}
}

func pronunciationRuns(styles Styles, lead, tail string) string {
	return styles.wrap(RolePhoneticSerif, "", "["+lead) + styles.wrap(RoleIPASans, "", tail+"]")
}

// legacyStripPass removes the brackets of every remaining "[...]" pair,
// including pairs whose ends were emitted into two different spans by the
// bracket pass.
func legacyStripPass() pass {
	return pass{
		name: "legacy-strip",
		apply: func(s string) string {
			return legacyStripRegexp.ReplaceAllString(s, "$1")
		},
	}
}
