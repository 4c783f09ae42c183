// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package markup

import "regexp"

// Delimiter pairs pair each opening delimiter with the next one on the same line.
var (
	slashPairRegexp = regexp.MustCompile(`//(.+?)//`)
	dashPairRegexp  = regexp.MustCompile(`--(.+?)--`)
)

func delimiterPass(name string, re *regexp.Regexp, role Role, styles Styles) pass {
	return pass{
		name: name,
		apply: func(s string) string {
			return replaceSubmatch(re, s, func(content string) string {
				return styles.wrap(role, "", content)
			})
		},
	}
}
