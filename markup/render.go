// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package markup

import (
	"errors"
	"fmt"
)

// Variant selects which grammar a [Renderer] understands.
type Variant int

const (
	// BraceAndBracket handles {b} {z} {l} {t} tags and [pronunciation] brackets.
	BraceAndBracket Variant = iota

	// DelimiterPair handles //phonetic// and --ipa-- runs and nothing else.
	DelimiterPair
)

// DefaultLinkTargetPrefix is prepended to a link tag's content to form its href.
const DefaultLinkTargetPrefix = "/entry/"

var errUnknownVariant = errors.New("unknown markup variant")

// String returns the configuration name of v.
func (v Variant) String() string {
	switch v {
	case BraceAndBracket:
		return "brace"
	case DelimiterPair:
		return "delimiter"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant parses a configuration name as produced by [Variant.String].
//
// The empty string selects [BraceAndBracket].
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "", "brace":
		return BraceAndBracket, nil
	case "delimiter":
		return DelimiterPair, nil
	default:
		return BraceAndBracket, fmt.Errorf("%w: %q", errUnknownVariant, name)
	}
}

// Config controls a [Renderer].
type Config struct {
	Variant Variant

	// LegacyBracketStrip reproduces the output of older builds, which
	// removed bracket pairs from the finished fragment. BraceAndBracket only.
	LegacyBracketStrip bool

	// Styles overrides the default style of any role it contains.
	Styles Styles

	// LinkTargetPrefix is prepended to link content to build the href.
	// Empty means [DefaultLinkTargetPrefix].
	LinkTargetPrefix string
}

// DefaultConfig returns the configuration used by [Render].
func DefaultConfig() Config {
	return Config{
		Variant:          BraceAndBracket,
		Styles:           DefaultStyles(),
		LinkTargetPrefix: DefaultLinkTargetPrefix,
	}
}

// pass is one rewrite step of the pipeline.
type pass struct {
	name  string
	apply func(string) string
}

// Renderer turns entry text into HTML fragments.
//
// A Renderer is immutable once built and safe for concurrent use.
type Renderer struct {
	variant Variant
	passes  []pass
}

var defaultRenderer = New(DefaultConfig())

// Render renders source with [DefaultConfig].
func Render(source string) string {
	return defaultRenderer.Render(source)
}

// New builds a Renderer for cfg.
//
// Roles missing from cfg.Styles fall back to [DefaultStyles]. An unknown
// variant is treated as [BraceAndBracket].
func New(cfg Config) *Renderer {
	styles := DefaultStyles().Merge(cfg.Styles)

	if cfg.LinkTargetPrefix == "" {
		cfg.LinkTargetPrefix = DefaultLinkTargetPrefix
	}

	if cfg.Variant != DelimiterPair {
		cfg.Variant = BraceAndBracket
	}

	return &Renderer{variant: cfg.Variant, passes: pipeline(cfg, styles)}
}

func pipeline(cfg Config, styles Styles) []pass {
	if cfg.Variant == DelimiterPair {
		return []pass{
			delimiterPass("delimiter-slash", slashPairRegexp, RolePhoneticSerif, styles),
			delimiterPass("delimiter-dash", dashPairRegexp, RoleIPASans, styles),
			linesPass(),
		}
	}

	passes := make([]pass, 0, len(braceKeyOrder)+3)

	for _, key := range braceKeyOrder {
		passes = append(passes, braceTagPass(key, styles, cfg.LinkTargetPrefix))
	}

	if cfg.LegacyBracketStrip {
		return append(passes, legacyBracketPass(styles), linesPass(), legacyStripPass())
	}

	return append(passes, bracketPass(styles), linesPass())
}

// Render runs every pass over source in order.
//
// It never fails. Markup it does not recognize is left as literal text.
func (r *Renderer) Render(source string) string {
	if source == "" {
		return source
	}

	for _, p := range r.passes {
		source = p.apply(source)
	}

	return source
}

// RenderAny renders v when it is a string and returns any other value unchanged.
func (r *Renderer) RenderAny(v any) any {
	if s, ok := v.(string); ok {
		return r.Render(s)
	}

	return v
}

// Variant returns the grammar r understands.
func (r *Renderer) Variant() Variant {
	return r.variant
}

// Passes returns the pass names in the order they run.
func (r *Renderer) Passes() []string {
	names := make([]string, len(r.passes))
	for i, p := range r.passes {
		names[i] = p.name
	}

	return names
}
