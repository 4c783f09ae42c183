// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Service ties the session cookie to the token checks.
type Service struct {
	sessions *Sessions
	checker  *Checker

	login  func(ctx context.Context, username, password string) (string, error)
	logout func(ctx context.Context, token string)
}

// NewService returns a Service talking to the dictionary API.
func NewService(sessions *Sessions, checker *Checker) *Service {
	return &Service{
		sessions: sessions,
		checker:  checker,
		login:    Login,
		logout:   Logout,
	}
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Session  Session
	LoggedIn bool
	// DropCookie is set when the cookie is definitely unusable:
	// a bad signature, an expired session or a token the API rejected.
	DropCookie bool
}

// Resolve verifies a signed Access cookie value and the API token inside it.
//
// When the API cannot be asked (an error or ErrCheckThrottled) the request is
// treated as logged out but the cookie is kept for the next request.
func (s *Service) Resolve(ctx context.Context, signed string) Resolution {
	if signed == "" {
		return Resolution{}
	}

	sess, err := s.sessions.Parse(signed)
	if err != nil {
		log.Ctx(ctx).Debug().Str("sys", "auth").Err(err).Msg("Dropping unreadable session cookie")

		return Resolution{DropCookie: true}
	}

	valid, err := s.checker.Check(ctx, sess.Token)
	if err != nil {
		log.Ctx(ctx).Warn().
			Str("sys", "auth").
			Str("username", sess.Username).
			Err(err).
			Msg("Could not verify session token")

		return Resolution{Session: sess}
	}

	if !valid {
		return Resolution{Session: sess, DropCookie: true}
	}

	return Resolution{Session: sess, LoggedIn: true}
}

// SignIn logs in with the API and returns the signed Access cookie value.
func (s *Service) SignIn(ctx context.Context, username, password string) (string, error) {
	token, err := s.login(ctx, username, password)
	if err != nil {
		return "", err
	}

	signed, err := s.sessions.Issue(Session{Username: username, Token: token})
	if err != nil {
		return "", fmt.Errorf("issuing session: %w", err)
	}

	s.checker.Remember(token, true)

	return signed, nil
}

// SignOut revokes the token carried by signed, if any is readable.
func (s *Service) SignOut(ctx context.Context, signed string) {
	sess, err := s.sessions.Parse(signed)
	if err != nil {
		return
	}

	s.checker.Forget(sess.Token)
	s.logout(ctx, sess.Token)
}
