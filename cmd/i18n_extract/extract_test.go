// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeI18n = `package i18n

type MsgKey string

func Tr(ctx any, msgid string, kv ...any) string { return msgid }
func TrC(ctx any, c, msgid string, kv ...any) string { return msgid }
func TrN(ctx any, singular, plural string, n int, kv ...any) string { return singular }
`

const fakeViews = `package views

import "example.test/i18n"

type navItem struct {
	path  string
	label i18n.MsgKey
}

var nav = []navItem{{"/", "Home"}, {path: "/about", label: "About"}}

var byPath = map[string]i18n.MsgKey{"/contact": "Contact"}

const settings = "Set" + "tings"

func link(u string, msgid i18n.MsgKey) {}

func page(ctx any, dynamic string) {
	_ = i18n.Tr(ctx, "Welcome, {{.Name}}", "Name", dynamic)
	_ = i18n.Tr(ctx, dynamic)
	_ = i18n.TrC(ctx, "verb", "Search")
	_ = i18n.TrN(ctx, "{{.N}} entry", "{{.N}} entries", 2)
	link("/settings", settings)
	link("/", i18n.MsgKey(dynamic))
	_ = i18n.MsgKey("Log in")
}
`

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) { return f(path) }

func typeCheck(t *testing.T, fset *token.FileSet, path, filename, src string, imp types.Importer) (*types.Package, *types.Info, *ast.File) {
	t.Helper()

	f, err := parser.ParseFile(fset, filename, src, 0)
	require.NoError(t, err)

	info := &types.Info{
		Types: map[ast.Expr]types.TypeAndValue{},
		Uses:  map[*ast.Ident]types.Object{},
		Defs:  map[*ast.Ident]types.Object{},
	}

	pkg, err := (&types.Config{Importer: imp}).Check(path, fset, []*ast.File{f}, info)
	require.NoError(t, err)

	return pkg, info, f
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()

	i18nPkg, _, _ := typeCheck(t, fset, "example.test/i18n", "i18n/i18n.go", fakeI18n, nil)

	imp := importerFunc(func(path string) (*types.Package, error) {
		if path == "example.test/i18n" {
			return i18nPkg, nil
		}

		return nil, errors.New("unexpected import " + path)
	})

	viewsPkg, info, file := typeCheck(t, fset, "example.test/views", "views/views.go", fakeViews, imp)

	cat := catalog{}
	e := &extractor{
		cat:      cat,
		root:     ".",
		fset:     fset,
		info:     info,
		i18nPkgs: i18nPackages([]*types.Package{i18nPkg, viewsPkg}),
	}
	e.inspect(file)

	got := make(map[key]int, len(cat))
	for k, refs := range cat {
		got[k] = refs[0].line
	}

	assert.Equal(t, map[key]int{
		{id: "Home"}:                                   10,
		{id: "About"}:                                  10,
		{id: "Contact"}:                                12,
		{id: "Welcome, {{.Name}}"}:                     19,
		{ctx: "verb", id: "Search"}:                    21,
		{id: "{{.N}} entry", plural: "{{.N}} entries"}: 22,
		{id: "Settings"}:                               23,
		{id: "Log in"}:                                 25,
	}, got)

	assert.Equal(t, "views/views.go", cat[key{id: "Home"}][0].file)
}

func TestWritePOT(t *testing.T) {
	t.Parallel()

	cat := catalog{
		{id: "Search"}:                                 {{"b.go", 3}, {"a.go", 9}, {"a.go", 9}},
		{ctx: "verb", id: "Look"}:                      {{"a.go", 1}},
		{id: "{{.N}} entry", plural: "{{.N}} entries"}: {{"c.go", 2}},
	}

	var sb strings.Builder
	require.NoError(t, writePOT(&sb, cat, "v1", time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)))

	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "msgid \"\"\nmsgstr \"\"\n\"Project-Id-Version: DialectFE v1\\n\"\n"))
	assert.Contains(t, out, "\"POT-Creation-Date: 2025-01-02 03:04+0000\\n\"\n")

	blocks := []string{
		"\n#: a.go:9 b.go:3\nmsgid \"Search\"\nmsgstr \"\"\n",
		"\n#: c.go:2\nmsgid \"{{.N}} entry\"\nmsgid_plural \"{{.N}} entries\"\nmsgstr[0] \"\"\nmsgstr[1] \"\"\n",
		"\n#: a.go:1\nmsgctxt \"verb\"\nmsgid \"Look\"\nmsgstr \"\"\n",
	}

	last := -1

	for _, b := range blocks {
		i := strings.Index(out, b)
		require.GreaterOrEqual(t, i, 0, "missing block %q", b)
		assert.Greater(t, i, last, "block %q out of order", b)

		last = i
	}
}
