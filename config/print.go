// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"net/url"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

// Printable renders the effective configuration as YAML. The session secret
// and any password in the API URL are replaced with a marker.
func (cfg *ServerConfig) Printable() ([]byte, error) {
	c := *cfg

	if c.Basic.SessionSecret != "" {
		c.Basic.SessionSecret = redactedValue
	}

	if u, err := url.Parse(c.API.BaseURL); err == nil && u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), redactedValue)
			c.API.BaseURL = u.String()
		}
	}

	return yaml.MarshalWithOptions(c, GetDurationEncoderOption())
}

// print announces the instance and dumps the configuration to stderr.
func (cfg *ServerConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Str("cacheid", cfg.Instance.FileServerCacheID).
		Str("api", cfg.API.BaseURL).
		Msg("Starting DialectFE")

	out, err := cfg.Printable()
	if err != nil {
		log.Err(err).Msg("Failed to print the configuration")

		return
	}

	_, _ = os.Stderr.Write(append([]byte("Effective configuration:\n"), out...))
}
