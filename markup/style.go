// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package markup

import (
	"errors"
	"fmt"
	"strings"
)

// Role is an abstract presentation intent that a tag resolves to.
type Role string

// Style roles known to the renderer.
const (
	RolePhoneticSerif   Role = "phonetic-serif"
	RoleIPASans         Role = "ipa-sans"
	RoleMutedAnnotation Role = "muted-annotation"
	RoleBold            Role = "bold"
	RoleDictLink        Role = "dict-link"
)

// AllRoles lists every role in a stable order.
var AllRoles = []Role{
	RolePhoneticSerif,
	RoleIPASans,
	RoleMutedAnnotation,
	RoleBold,
	RoleDictLink,
}

// Style is the concrete markup a role renders as.
type Style struct {
	// Element is the HTML element name, e.g. "span".
	Element string `yaml:"element"`

	// Class is written as the class attribute when non-empty.
	Class string `yaml:"class,omitempty"`

	// CSS is written as the style attribute when non-empty.
	CSS string `yaml:"css,omitempty"`
}

// Styles maps roles to their concrete styles.
type Styles map[Role]Style

var (
	errUnknownRole       = errors.New("unknown style role")
	errMissingElement    = errors.New("style has no element")
	errInvalidElement    = errors.New("element name must be lowercase letters and digits")
	errUnsafeDeclaration = errors.New("style declaration contains a sequence that later passes would rewrite")
)

// unsafeStyleSequences may not appear in a class or CSS declaration.
var unsafeStyleSequences = []string{"[", "]", "{", "}", "\r", "\n", `"`, "//", "--"}

const (
	defaultPhoneticSerif   = "font-family: 'Cambria', 'Cambria Math', 'Microsoft YaHei', serif;"
	defaultIPASans         = "font-family: 'Charis SIL', 'Microsoft YaHei', sans-serif;"
	defaultMutedAnnotation = "color: gray;"
)

// DefaultStyles returns the styles used by the dictionary site.
//
// The returned map is a fresh copy and may be modified by the caller.
func DefaultStyles() Styles {
	return Styles{
		RolePhoneticSerif:   {Element: "span", CSS: defaultPhoneticSerif},
		RoleIPASans:         {Element: "span", CSS: defaultIPASans},
		RoleMutedAnnotation: {Element: "small", CSS: defaultMutedAnnotation},
		RoleBold:            {Element: "b"},
		RoleDictLink:        {Element: "a", Class: "dict-link"},
	}
}

// Merge returns a copy of s with every role present in overrides replaced.
func (s Styles) Merge(overrides Styles) Styles {
	out := make(Styles, len(s)+len(overrides))

	for role, style := range s {
		out[role] = style
	}

	for role, style := range overrides {
		out[role] = style
	}

	return out
}

// Validate reports the first style that cannot be used safely.
//
// A declaration must not contain text that a later pass would match again,
// such as brackets, braces, or the delimiter pairs, and must not break out of
// its attribute.
func (s Styles) Validate() error {
	for role, style := range s {
		if !isKnownRole(role) {
			return fmt.Errorf("%w: %q", errUnknownRole, role)
		}

		if style.Element == "" {
			return fmt.Errorf("%w: %s", errMissingElement, role)
		}

		for _, c := range style.Element {
			if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
				return fmt.Errorf("%w: %s: %q", errInvalidElement, role, style.Element)
			}
		}

		for _, field := range []string{style.Class, style.CSS} {
			for _, seq := range unsafeStyleSequences {
				if strings.Contains(field, seq) {
					return fmt.Errorf("%w: %s contains %q", errUnsafeDeclaration, role, seq)
				}
			}
		}
	}

	return nil
}

func isKnownRole(role Role) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}

	return false
}

// wrap writes content inside the element for role.
//
// href is only written for links; pass "" otherwise.
func (s Styles) wrap(role Role, href, content string) string {
	style, ok := s[role]
	if !ok || style.Element == "" {
		style = DefaultStyles()[role]
	}

	var b strings.Builder

	b.Grow(len(content) + len(style.CSS) + len(style.Class) + len(href) + 2*len(style.Element) + 32)

	b.WriteByte('<')
	b.WriteString(style.Element)

	if href != "" {
		b.WriteString(` href="`)
		b.WriteString(href)
		b.WriteByte('"')
	}

	if style.CSS != "" {
		b.WriteString(` style="`)
		b.WriteString(style.CSS)
		b.WriteByte('"')
	}

	if style.Class != "" {
		b.WriteString(` class="`)
		b.WriteString(style.Class)
		b.WriteByte('"')
	}

	b.WriteByte('>')
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(style.Element)
	b.WriteByte('>')

	return b.String()
}
