// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command render converts entry text to HTML with the same renderer the
// server uses, for checking entries and style overrides offline.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/dialectfe/dialectfe/core/audit"
	"codeberg.org/dialectfe/dialectfe/markup"
)

// renderOptions holds the flag values of one invocation.
type renderOptions struct {
	variant     string
	legacyStrip bool
	linkPrefix  string
	stylesFile  string
	plain       bool
	passes      bool
}

func main() {
	audit.SetDefaultLogger()

	if err := newRenderCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("Render failed")
	}
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [text]",
		Short: "Render dictionary markup to HTML",
		Long: `Render dictionary entry text to an HTML fragment.

The text is read from the first argument, or from standard input when no
argument is given. A single trailing newline on standard input is ignored.

Examples:
  render '{b 蛐蛐}[tɕʰiu1-21 tɕʰiu1]'
  render --variant delimiter < entry.txt
  render --styles styles.yaml --plain '{z 虫名}'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.variant, "variant", "v", markup.BraceAndBracket.String(),
		`markup variant, "brace" or "delimiter"`)
	flags.BoolVar(&opts.legacyStrip, "legacy-strip", false,
		"strip bracket pairs from the output like older builds did")
	flags.StringVar(&opts.linkPrefix, "link-prefix", markup.DefaultLinkTargetPrefix,
		"prefix of the href written for link tags")
	flags.StringVarP(&opts.stylesFile, "styles", "s", "",
		"YAML file of role style overrides")
	flags.BoolVarP(&opts.plain, "plain", "p", false,
		"print the text content of the fragment instead of HTML")
	flags.BoolVar(&opts.passes, "passes", false,
		"print the rewrite passes of the configured renderer and exit")

	return cmd
}

func (o *renderOptions) renderer() (*markup.Renderer, error) {
	variant, err := markup.ParseVariant(o.variant)
	if err != nil {
		return nil, err
	}

	cfg := markup.Config{
		Variant:            variant,
		LegacyBracketStrip: o.legacyStrip,
		LinkTargetPrefix:   o.linkPrefix,
	}

	if o.stylesFile != "" {
		cfg.Styles, err = markup.LoadStylesFile(o.stylesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load styles from %s: %w", o.stylesFile, err)
		}
	}

	return markup.New(cfg), nil
}

func (o *renderOptions) run(cmd *cobra.Command, args []string) error {
	r, err := o.renderer()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if o.passes {
		_, err = fmt.Fprintln(out, strings.Join(r.Passes(), "\n"))

		return err
	}

	var source string

	if len(args) == 1 {
		source = args[0]
	} else {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read standard input: %w", err)
		}

		source = strings.TrimSuffix(strings.TrimSuffix(string(raw), "\n"), "\r")
	}

	rendered := r.Render(source)
	if o.plain {
		rendered = markup.PlainText(rendered)
	}

	_, err = fmt.Fprintln(out, rendered)

	return err
}
