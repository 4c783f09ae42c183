// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRenderCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))

	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"argument", "", []string{"{b 蛆}"}, "<b>蛆</b>\n"},
		{"stdin drops one trailing newline", "{b 蛆}\n", nil, "<b>蛆</b>\n"},
		{"stdin keeps inner newlines", "a\r\nb\r\n", nil, "a<br>b\n"},
		{"link prefix", "", []string{"--link-prefix", "/w/", "{l 蛐}"}, `<a href="/w/蛐" class="dict-link">蛐</a>` + "\n"},
		{"delimiter variant ignores tags", "", []string{"--variant", "delimiter", "{b 蛆}"}, "{b 蛆}\n"},
		{"plain", "", []string{"--plain", "{b 蛆}\n[pa1-214]"}, "蛆\n[pa1214]\n"},
		{"passes", "", []string{"--variant", "delimiter", "--passes"}, "delimiter-slash\ndelimiter-dash\nlines\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRenderCommand_LegacyStrip(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "--legacy-strip", "x[]y")
	require.NoError(t, err)
	assert.Equal(t, "xy\n", out)
}

func TestRenderCommand_Styles(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bold:\n  element: strong\n"), 0o600))

	out, err := execute(t, "", "--styles", path, "{b 蛆}")
	require.NoError(t, err)
	assert.Equal(t, "<strong>蛆</strong>\n", out)
}

func TestRenderCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown variant", []string{"--variant", "wiki", "x"}},
		{"missing styles file", []string{"--styles", "/nonexistent/styles.yaml", "x"}},
		{"too many arguments", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}
