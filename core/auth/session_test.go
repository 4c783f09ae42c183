// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package auth

import (
	"strings"
	"testing"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_RoundTrip(t *testing.T) {
	t.Parallel()

	sessions := NewSessions(paseto.NewV4AsymmetricSecretKey())

	signed, err := sessions.Issue(Session{Username: "ngo", Token: "tok-123"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed, "v4.public."))

	got, err := sessions.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, Session{Username: "ngo", Token: "tok-123"}, got)
}

func TestSessions_Rejects(t *testing.T) {
	t.Parallel()

	sessions := NewSessions(paseto.NewV4AsymmetricSecretKey())
	other := NewSessions(paseto.NewV4AsymmetricSecretKey())

	foreign, err := other.Issue(Session{Username: "ngo", Token: "tok"})
	require.NoError(t, err)

	expired := NewSessions(sessions.key)
	expired.now = func() time.Time { return time.Now().Add(-2 * SessionLifetime) }

	stale, err := expired.Issue(Session{Username: "ngo", Token: "tok"})
	require.NoError(t, err)

	valid, err := sessions.Issue(Session{Username: "ngo", Token: "tok"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		signed string
	}{
		{"empty", ""},
		{"garbage", "not a token"},
		{"signed by another key", foreign},
		{"expired", stale},
		{"tampered", valid[:len(valid)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := sessions.Parse(tt.signed)
			assert.Error(t, err)
		})
	}
}

func TestSessions_IssueRequiresFields(t *testing.T) {
	t.Parallel()

	sessions := NewSessions(paseto.NewV4AsymmetricSecretKey())

	_, err := sessions.Issue(Session{Username: "ngo"})
	require.ErrorIs(t, err, errEmptySession)

	_, err = sessions.Issue(Session{Token: "tok"})
	require.ErrorIs(t, err, errEmptySession)
}
