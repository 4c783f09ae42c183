// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"codeberg.org/dialectfe/dialectfe/config"
)

var (
	// Logger is replaced by SetupFS with a child of the global logger.
	Logger zerolog.Logger

	// reported remembers which locale and key pairs were already logged.
	reported sync.Map
)

func strictMissingKeys() bool {
	return config.Global.Internationalization.StrictMissingKeys
}

// reportMissing warns about a lookup without a translation, once per locale.
func reportMissing(tag language.Tag, m message) {
	base, script, region := tag.Raw()
	locale := base.String()

	if s := script.String(); s != "Zzzz" {
		locale += "-" + s
	}

	if r := region.String(); r != "ZZ" {
		locale += "-" + r
	}

	if _, seen := reported.LoadOrStore(locale+"\x00"+m.key(), struct{}{}); seen {
		return
	}

	Logger.Warn().
		Str("locale", locale).
		Str("key", m.key()).
		Msg("Missing i18n translation")
}
