// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/dialectfe/dialectfe/config"
)

// fakeAPI mimics the account endpoints of the dictionary API.
func fakeAPI(t *testing.T) *[]string {
	t.Helper()

	var loggedOut []string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/checkAuth", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") == "tok+/=" {
			_, _ = io.WriteString(w, `{"authenticated":true}`)

			return
		}

		_, _ = io.WriteString(w, `{"authenticated":false}`)
	})
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		if r.PostFormValue("username") == "ngo" && r.PostFormValue("password") == "secret" {
			_, _ = io.WriteString(w, `{"token":"tok+/="}`)

			return
		}

		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":true,"message":"wrong password"}`)
	})
	mux.HandleFunc("GET /api/logout", func(w http.ResponseWriter, r *http.Request) {
		loggedOut = append(loggedOut, r.URL.Query().Get("token"))
		_, _ = io.WriteString(w, `{}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	previous := config.Global
	t.Cleanup(func() { config.Global = previous })

	config.Global.API.BaseURL = server.URL
	config.Global.API.Timeout = 2 * time.Second

	return &loggedOut
}

// The remote tests share config.Global and run sequentially.

func TestLoginCheckLogout(t *testing.T) {
	loggedOut := fakeAPI(t)
	ctx := context.Background()

	token, err := Login(ctx, "ngo", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok+/=", token, "tokens survive query encoding")

	ok, err := CheckRemote(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckRemote(ctx, "forged")
	require.NoError(t, err)
	assert.False(t, ok)

	Logout(ctx, token)
	Logout(ctx, "")
	assert.Equal(t, []string{"tok+/="}, *loggedOut)
}

func TestLogin_Failures(t *testing.T) {
	fakeAPI(t)

	tests := []struct {
		name     string
		username string
		password string
		errIs    error
	}{
		{"missing password", "ngo", "", ErrMissingCredentials},
		{"missing username", "", "secret", ErrMissingCredentials},
		{"wrong password", "ngo", "nope", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Login(context.Background(), tt.username, tt.password)
			require.Error(t, err)

			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestLogout_UpstreamDown(t *testing.T) {
	previous := config.Global
	t.Cleanup(func() { config.Global = previous })

	config.Global.API.BaseURL = "http://127.0.0.1:1"
	config.Global.API.Timeout = time.Second

	assert.NotPanics(t, func() { Logout(context.Background(), "tok") })
}
