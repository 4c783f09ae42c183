// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"
)

// key identifies a catalogue entry. plural is empty for singular entries.
type key struct {
	ctx    string
	id     string
	plural string
}

type ref struct {
	file string
	line int
}

// catalog collects every source position a message is used at.
type catalog map[key][]ref

// argSlots gives the argument indices of a translation call.
// A negative index means the call has no such argument.
type argSlots struct {
	ctx, id, plural int
}

// translators lists the functions of package i18n whose arguments are
// msgids, and where those arguments sit.
var translators = map[string]argSlots{
	"Tr":           {ctx: -1, id: 1, plural: -1},
	"NewUserError": {ctx: -1, id: 1, plural: -1},
	"TrC":          {ctx: 1, id: 2, plural: -1},
	"TrN":          {ctx: -1, id: 1, plural: 2},
	"TrNC":         {ctx: 1, id: 2, plural: 3},
}

// extractor walks the files of one package.
type extractor struct {
	cat      catalog
	root     string
	fset     *token.FileSet
	info     *types.Info
	i18nPkgs map[string]struct{}
}

func (e *extractor) inspect(f *ast.File) {
	ast.Inspect(f, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.CallExpr:
			e.call(x)
		case *ast.CompositeLit:
			e.compositeLit(x)
		}

		return true
	})
}

// i18nPackages returns the paths of the packages named i18n that declare a
// string-based MsgKey type, however they are imported.
func i18nPackages(pkgs []*types.Package) map[string]struct{} {
	out := make(map[string]struct{})

	for _, p := range pkgs {
		if p == nil || p.Name() != "i18n" {
			continue
		}

		tn, ok := p.Scope().Lookup("MsgKey").(*types.TypeName)
		if !ok {
			continue
		}

		if basic, ok := tn.Type().Underlying().(*types.Basic); ok && basic.Kind() == types.String {
			out[p.Path()] = struct{}{}
		}
	}

	return out
}

// constString evaluates expr when it is a constant string expression.
func (e *extractor) constString(expr ast.Expr) (string, bool) {
	tv, ok := e.info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKey reports whether t is i18n.MsgKey, directly or through an alias.
func (e *extractor) isMsgKey(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil || obj.Name() != "MsgKey" {
		return false
	}

	_, ok = e.i18nPkgs[obj.Pkg().Path()]

	return ok
}

// addConst records expr when it is constant and its destination type is MsgKey.
func (e *extractor) addConst(dst types.Type, expr ast.Expr) {
	if !e.isMsgKey(dst) {
		return
	}

	if msg, ok := e.constString(expr); ok {
		e.add(expr.Pos(), key{id: msg})
	}
}

// compositeLit picks up constants stored into MsgKey-typed map keys,
// map values, slice or array elements and struct fields.
func (e *extractor) compositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil {
		return
	}

	t := tv.Type
	if p, ok := t.Underlying().(*types.Pointer); ok {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		for _, elt := range x.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				e.addConst(u.Key(), kv.Key)
				e.addConst(u.Elem(), kv.Value)
			}
		}

	case *types.Slice:
		e.elements(u.Elem(), x.Elts)

	case *types.Array:
		e.elements(u.Elem(), x.Elts)

	case *types.Struct:
		for i, elt := range x.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				id, ok := kv.Key.(*ast.Ident)
				if !ok {
					continue
				}

				if field := lookupField(u, id.Name); field != nil {
					e.addConst(field.Type(), kv.Value)
				}

				continue
			}

			if i < u.NumFields() {
				e.addConst(u.Field(i).Type(), elt)
			}
		}
	}
}

func (e *extractor) elements(elem types.Type, elts []ast.Expr) {
	for _, elt := range elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			elt = kv.Value
		}

		e.addConst(elem, elt)
	}
}

func lookupField(s *types.Struct, name string) *types.Var {
	for i := range s.NumFields() {
		if f := s.Field(i); f.Name() == name {
			return f
		}
	}

	return nil
}

// call handles MsgKey conversions, the i18n translation functions and any
// other call passing a constant to a MsgKey parameter.
func (e *extractor) call(x *ast.CallExpr) {
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 {
			e.addConst(tv.Type, x.Args[0])
		}

		return
	}

	if e.translatorCall(x) {
		return
	}

	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok || sig.Params().Len() == 0 {
		return
	}

	params := sig.Params()
	last := params.Len() - 1

	for i, arg := range x.Args {
		var pt types.Type

		switch {
		case sig.Variadic() && i >= last:
			if x.Ellipsis != token.NoPos {
				continue
			}

			pt = params.At(last).Type().(*types.Slice).Elem()
		case i <= last:
			pt = params.At(i).Type()
		default:
			return
		}

		e.addConst(pt, arg)
	}
}

// translatorCall records the msgid of a call to one of [translators] and
// reports whether x was such a call.
func (e *extractor) translatorCall(x *ast.CallExpr) bool {
	sel, ok := x.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}

	fn, ok := e.info.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}

	if _, ok := e.i18nPkgs[fn.Pkg().Path()]; !ok {
		return false
	}

	slots, ok := translators[fn.Name()]
	if !ok {
		return false
	}

	var k key

	k.id, ok = e.argString(x, slots.id)
	if !ok {
		return true
	}

	if slots.ctx >= 0 {
		if k.ctx, ok = e.argString(x, slots.ctx); !ok {
			return true
		}
	}

	if slots.plural >= 0 {
		if k.plural, ok = e.argString(x, slots.plural); !ok {
			return true
		}
	}

	e.add(x.Args[slots.id].Pos(), k)

	return true
}

func (e *extractor) argString(x *ast.CallExpr, i int) (string, bool) {
	if i >= len(x.Args) {
		return "", false
	}

	return e.constString(x.Args[i])
}

// add records k at pos, with the file path relative to the project root.
func (e *extractor) add(pos token.Pos, k key) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.root, file); err == nil {
		file = rel
	}

	e.cat[k] = append(e.cat[k], ref{file: filepath.ToSlash(file), line: p.Line})
}
