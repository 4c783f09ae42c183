// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command i18n_extract collects every msgid used in the module into a gettext
// template. Translators merge the template into the catalogues under po/.
package main

import (
	"flag"
	"go/types"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/dialectfe/dialectfe/core/audit"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

func main() {
	audit.SetDefaultLogger()

	outPath := flag.String("o", "po/dialectfe.pot", "output file")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get working directory")
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax}, "./...")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load packages")
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal().Msg("Failed to load packages due to errors")
	}

	cat := extract(pkgs, findProjectRoot(wd))

	if err := os.MkdirAll(filepath.Dir(*outPath), dirPerm); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	f, err := os.OpenFile(*outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to open output file")
	}

	if err := writePOT(f, cat, detectVersion(), time.Now()); err != nil {
		_ = f.Close()

		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write template")
	}

	if err := f.Close(); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write template")
	}

	log.Info().
		Int("messages", len(cat)).
		Str("path", *outPath).
		Msg("Extracted messages")
}

// extract runs the extractor over every file of pkgs.
func extract(pkgs []*packages.Package, root string) catalog {
	var all []*types.Package

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		all = append(all, p.Types)
	})

	i18nPkgs := i18nPackages(all)
	cat := catalog{}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{cat: cat, root: root, fset: p.Fset, info: p.TypesInfo, i18nPkgs: i18nPkgs}

		for _, f := range p.Syntax {
			e.inspect(f)
		}
	}

	return cat
}

// detectVersion describes the checkout with git, or returns "dev".
func detectVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}

	return strings.TrimSpace(string(out))
}

// findProjectRoot prefers the git top level, then the nearest directory
// holding go.mod, then wd itself.
func findProjectRoot(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = wd

	if out, err := cmd.Output(); err == nil {
		if root := strings.TrimSpace(string(out)); root != "" {
			return filepath.Clean(root)
		}
	}

	for dir := filepath.Clean(wd); ; dir = filepath.Dir(dir) {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		if filepath.Dir(dir) == dir {
			return wd
		}
	}
}
