// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package markup renders annotated dictionary-entry strings into HTML fragments.

Entry text mixes literal text with a small, closed set of markup:

	{b 蛆}          bold
	{z 注}          small muted annotation
	{l 蛐}          link to another entry
	{t [pa1]蛆}     unwrap; the content is processed by later passes
	[pa1-214]      pronunciation, lead and tone rendered in different fonts
	//abc//        phonetic run (delimiter-pair variant)
	--xyz--        IPA run (delimiter-pair variant)

Rendering is a fixed sequence of passes. Each pass is a pure string to string
rewrite and later passes see the output of earlier ones:

	brace-b, brace-z, brace-l, brace-t, bracket, lines

The delimiter-pair variant runs delimiter-slash, delimiter-dash, lines instead.

Malformed markup is never an error. Unterminated or unknown tags are left in
the output as literal text.

# Styles

Tags do not carry presentation. Each one resolves to a [Role], and a [Styles]
map turns the role into an element with optional class and inline CSS. The
defaults reproduce the fonts used by the dictionary; deployments override
them with [LoadStyles].

# Legacy bracket strip

Older builds ran one more rewrite after line normalization that removed every
remaining "[...]" pair from the whole output, including the brackets that the
bracket pass had just placed inside its own spans. Set
[Config.LegacyBracketStrip] to reproduce that output exactly.

# Trust

Content is copied into the output verbatim. The caller injects the result as
markup, so untrusted entry text must be sanitized before it reaches [Render].
*/
package markup
