// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package auth

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

// implicit is the paseto implicit assertion binding tokens to this use.
// Changing it invalidates every issued session.
const implicit = "DialectFE session"

const (
	sessionSubject = "dictionary session"

	// SessionLifetime matches the lifetime of the Access cookie.
	SessionLifetime = 30 * 24 * time.Hour
)

var errEmptySession = errors.New("session needs both a username and a token")

// Session is what the Access cookie carries.
type Session struct {
	Username string
	// Token is the opaque dictionary API token.
	Token string
}

// Sessions signs and verifies Access cookie values with a v4.public key.
type Sessions struct {
	key    paseto.V4AsymmetricSecretKey
	public paseto.V4AsymmetricPublicKey
	parser paseto.Parser
	now    func() time.Time
}

// NewSessions returns a Sessions using key for signing.
func NewSessions(key paseto.V4AsymmetricSecretKey) *Sessions {
	return &Sessions{
		key:    key,
		public: key.Public(),
		parser: paseto.MakeParser([]paseto.Rule{
			paseto.NotExpired(),
			paseto.Subject(sessionSubject),
		}),
		now: time.Now,
	}
}

// Issue returns the signed token for s.
func (m *Sessions) Issue(s Session) (string, error) {
	if s.Username == "" || s.Token == "" {
		return "", errEmptySession
	}

	now := m.now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(SessionLifetime))
	token.SetSubject(sessionSubject)
	token.SetString("username", s.Username)
	token.SetString("token", s.Token)

	return token.V4Sign(m.key, []byte(implicit)), nil
}

// Parse verifies signed and returns the session it carries.
func (m *Sessions) Parse(signed string) (Session, error) {
	token, err := m.parser.ParseV4Public(m.public, signed, []byte(implicit))
	if err != nil {
		return Session{}, fmt.Errorf("invalid session: %w", err)
	}

	username, err := token.GetString("username")
	if err != nil {
		return Session{}, fmt.Errorf("invalid session: %w", err)
	}

	apiToken, err := token.GetString("token")
	if err != nil {
		return Session{}, fmt.Errorf("invalid session: %w", err)
	}

	if username == "" || apiToken == "" {
		return Session{}, errEmptySession
	}

	return Session{Username: username, Token: apiToken}, nil
}
