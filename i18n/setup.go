// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/server/assets"
)

var (
	// poDomain is the gettext domain to load under each locale.
	poDomain = "dialectfe"

	// localesByTag maps canonical BCP 47 tags, for example
	// "zh-Hans", "zh-Hant", to their loaded gotext.Locale.
	localesByTag map[string]*gotext.Locale

	// supportedTags holds the base tag and every tag for which a locale was loaded.
	supportedTags []language.Tag

	// matcher is a private [language.Matcher] derived from the loaded locales.
	matcher language.Matcher
)

// Setup loads the gettext catalogues embedded in [assets.FS].
func Setup() error {
	return SetupFS(assets.FS)
}

// SetupFS initialises package i18n by loading gettext catalogues from fsys
// and constructing a language matcher.
//
// The expected layout is:
//
//	po/<locale>.po
//
// The <locale> filename part may use hyphens or underscores, for example "zh-Hant.po" or "zh_Hant.po",
// and is normalised to a canonical BCP 47 language tag for matching. The template file, "po/dialectfe.pot",
// is ignored.
//
// The locale named by internationalization.defaultLocale comes first in the
// matcher and is what users without a matching preference get. BaseLocale is
// always supported: its strings are the msgids themselves.
//
// Calling SetupFS again replaces the previously loaded locales and matcher.
func SetupFS(fsys fs.FS) error {
	Logger = log.With().Str("sys", "i18n").Logger()

	localesByTag = make(map[string]*gotext.Locale)
	supportedTags = nil
	matcher = nil

	entries, err := fs.ReadDir(fsys, "po")
	if err != nil {
		return fmt.Errorf("failed to read po directory: %w", err)
	}

	var tagsList []language.Tag

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".po") {
			continue
		}

		fileName := entry.Name()
		localeName := strings.TrimSuffix(fileName, ".po")

		// Accept both underscore and hyphen.
		t, err := language.Parse(strings.ReplaceAll(localeName, "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", fileName).Msg("Skipping invalid locale file")

			continue
		}

		canonical := t.String()

		po := gotext.NewPoFS(fsys)
		po.ParseFile(path.Join("po", fileName))

		loc := gotext.NewLocale("", canonical) // Base path is unused when manually adding translators.
		loc.AddTranslator(poDomain, po)

		localesByTag[canonical] = loc

		tagsList = append(tagsList, t)

		Logger.Info().
			Str("locale", canonical).
			Str("domain", poDomain).
			Msg("Loaded locale")
	}

	defaultTag = resolveDefaultTag(tagsList)

	// defaultTag is first to make it the fallback for matching.
	all := make([]language.Tag, 0, len(tagsList)+2)
	all = append(all, defaultTag)

	if defaultTag != baseTag {
		all = append(all, baseTag)
	}

	sort.Slice(tagsList, func(i, j int) bool { return tagsList[i].String() < tagsList[j].String() })

	for _, t := range tagsList {
		if t == defaultTag || t == baseTag {
			continue
		}

		all = append(all, t)
	}

	matcher = language.NewMatcher(all)
	supportedTags = all

	return nil
}

// resolveDefaultTag returns the configured default locale when a catalogue
// was loaded for it, and BaseLocale otherwise.
func resolveDefaultTag(loaded []language.Tag) language.Tag {
	configured := config.Global.Internationalization.DefaultLocale
	if configured == "" {
		return baseTag
	}

	t, err := language.Parse(configured)
	if err != nil {
		Logger.Warn().Err(err).Str("locale", configured).Msg("Invalid default locale, using the base locale")

		return baseTag
	}

	if t == baseTag {
		return baseTag
	}

	for _, l := range loaded {
		if l == t {
			return t
		}
	}

	Logger.Warn().Str("locale", configured).Msg("No catalogue for the default locale, using the base locale")

	return baseTag
}
