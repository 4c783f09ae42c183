// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package audit logs and times the HTTP traffic of DialectFE.
package audit

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger writes to stderr until the configuration replaces the
// global logger. The commands never replace it.
func SetDefaultLogger() {
	fd := os.Stderr.Fd()

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd),
		TimeFormat: time.TimeOnly,
	})
}
