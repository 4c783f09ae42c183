// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package markup

import "strings"

// LineBreak is the marker that replaces each line feed.
const LineBreak = "<br>"

var lineReplacer = strings.NewReplacer("\r", "", "\n", LineBreak)

// linesPass drops carriage returns and turns line feeds into [LineBreak].
func linesPass() pass {
	return pass{
		name:  "lines",
		apply: lineReplacer.Replace,
	}
}
