// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/dialectfe/dialectfe/core/requests"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	errNoToken            = errors.New("login response carried no token")
)

// CheckRemote calls the dictionary API's checkAuth endpoint.
// It satisfies RemoteCheck.
func CheckRemote(ctx context.Context, token string) (bool, error) {
	body, err := requests.GetJSON(ctx, requests.Endpoint("/api/checkAuth", url.Values{"token": {token}}), nil)
	if err != nil {
		return false, fmt.Errorf("checking token: %w", err)
	}

	return gjson.GetBytes(body, "authenticated").Bool(), nil
}

// Login exchanges credentials for an API token.
func Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}

	body, err := requests.PostForm(ctx, requests.Endpoint("/api/login", nil), url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}

	token := gjson.GetBytes(body, "token").String()
	if token == "" {
		return "", errNoToken
	}

	return token, nil
}

// Logout tells the API to revoke token. Failures are logged and otherwise
// ignored: the local session is cleared either way.
func Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}

	_, err := requests.GetJSON(ctx, requests.Endpoint("/api/logout", url.Values{"token": {token}}), nil)
	if err != nil {
		log.Ctx(ctx).Warn().
			Str("sys", "auth").
			Err(err).
			Msg("Upstream logout failed")
	}
}
