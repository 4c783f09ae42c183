// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package markup

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// LoadStyles decodes role overrides from YAML and validates them.
//
// The document maps role names to styles:
//
//	phonetic-serif:
//	  element: span
//	  css: "font-family: 'Noto Serif', serif;"
//	dict-link:
//	  element: a
//	  class: entry-link
func LoadStyles(r io.Reader) (Styles, error) {
	var raw map[string]Style

	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Styles{}, nil
		}

		return nil, fmt.Errorf("failed to decode styles: %w", err)
	}

	styles := make(Styles, len(raw))
	for name, style := range raw {
		styles[Role(name)] = style
	}

	if err := styles.Validate(); err != nil {
		return nil, err
	}

	return styles, nil
}

// LoadStylesFile is [LoadStyles] for a file on disk.
func LoadStylesFile(path string) (Styles, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the operator's configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open styles file %s: %w", path, err)
	}
	defer f.Close()

	return LoadStyles(f)
}
