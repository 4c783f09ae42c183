// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets holds the files embedded into the binary: the stylesheet,
robots.txt and the gettext catalogues under po/.

The main package fills FS at startup. Tests that need catalogues pass their
own fs.FS to i18n.SetupFS instead.
*/
package assets

import (
	"embed"
)

// FS is the embedded file system, rooted at the repository root.
var FS embed.FS
