// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"time"
)

// writePOT writes cat as a gettext template, sorted by context, msgid and
// plural so that regenerating it gives a stable diff.
func writePOT(w io.Writer, cat catalog, version string, created time.Time) error {
	keys := make([]key, 0, len(cat))
	for k := range cat {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, func(a, b key) int {
		return cmp.Or(cmp.Compare(a.ctx, b.ctx), cmp.Compare(a.id, b.id), cmp.Compare(a.plural, b.plural))
	})

	pw := &potWriter{w: w}

	pw.printf("msgid \"\"\nmsgstr \"\"\n")
	pw.printf("\"Project-Id-Version: DialectFE %s\\n\"\n", version)
	pw.printf("\"POT-Creation-Date: %s\\n\"\n", created.UTC().Format("2006-01-02 15:04+0000"))
	pw.printf("\"Language: en\\n\"\n")
	pw.printf("\"Report-Msgid-Bugs-To: https://codeberg.org/dialectfe/dialectfe/issues\\n\"\n")
	pw.printf("\"MIME-Version: 1.0\\n\"\n")
	pw.printf("\"Content-Type: text/plain; charset=UTF-8\\n\"\n")
	pw.printf("\"Content-Transfer-Encoding: 8bit\\n\"\n")
	pw.printf("\"Plural-Forms: nplurals=2; plural=(n != 1);\\n\"\n")

	for _, k := range keys {
		pw.printf("\n#:")

		for _, r := range sortedRefs(cat[k]) {
			pw.printf(" %s:%d", r.file, r.line)
		}

		pw.printf("\n")

		if k.ctx != "" {
			pw.printf("msgctxt %q\n", k.ctx)
		}

		pw.printf("msgid %q\n", k.id)

		if k.plural != "" {
			pw.printf("msgid_plural %q\nmsgstr[0] \"\"\nmsgstr[1] \"\"\n", k.plural)
		} else {
			pw.printf("msgstr \"\"\n")
		}
	}

	return pw.err
}

// sortedRefs orders refs by file and line and drops duplicates.
func sortedRefs(refs []ref) []ref {
	out := slices.Clone(refs)
	slices.SortFunc(out, func(a, b ref) int {
		return cmp.Or(cmp.Compare(a.file, b.file), cmp.Compare(a.line, b.line))
	})

	return slices.Compact(out)
}

type potWriter struct {
	w   io.Writer
	err error
}

func (p *potWriter) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}
