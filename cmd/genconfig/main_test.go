// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/dialectfe/dialectfe/config"
)

func defaults() *config.ServerConfig {
	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	return cfg
}

func TestEnvExample(t *testing.T) {
	t.Parallel()

	out := envExample(defaults())

	for _, want := range []string{
		"## Basic\n",
		"## Markup\n",
		`DIALECTFE_HOST="localhost"` + "\n",
		`DIALECTFE_API_URL="http://localhost:8080"` + "\n",
		"# DIALECTFE_SECRET=\n",
		"# DIALECTFE_LOG_OUTPUTS=/dev/stderr\n",
		"# DIALECTFE_MARKUP_VARIANT=brace\n",
		"# HTTPS_PROXY=\n",
	} {
		assert.Contains(t, out, want)
	}

	assert.NotContains(t, out, "Build")
}

func TestYAMLExample(t *testing.T) {
	t.Parallel()

	out, err := yamlExample(defaults())
	require.NoError(t, err)

	assert.Contains(t, out, "\nbasic:\n")
	assert.Contains(t, out, "\n  host: localhost\n")
	assert.Contains(t, out, "\n  # logLevel: info\n")
	assert.Contains(t, out, secretComment)

	for line := range strings.SplitSeq(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(line, "  ") && !strings.HasPrefix(trimmed, "#") {
			assert.True(t, isEssentialKey(trimmed), "unexpected live key %q", trimmed)
		}
	}
}
