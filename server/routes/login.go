// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/dialectfe/dialectfe/assets/views"
	"codeberg.org/dialectfe/dialectfe/core/auth"
	"codeberg.org/dialectfe/dialectfe/core/cookie"
	"codeberg.org/dialectfe/dialectfe/core/requests"
	"codeberg.org/dialectfe/dialectfe/core/untrusted"
	"codeberg.org/dialectfe/dialectfe/i18n"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// returnPathOr sanitizes the form field name and falls back to fallback.
func returnPathOr(r *http.Request, name, fallback string) string {
	if p := utils.SanitizeReturnPath(utils.GetFormValue(r, name)); p != "" {
		return p
	}

	return fallback
}

// LoginPage is the handler for GET /self/login.
func LoginPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")

	pageData := views.LoginData{
		Title:            i18n.Tr(r.Context(), "Log in"),
		LoginReturnPath:  returnPathOr(r, "loginReturnPath", "/"),
		NoAuthReturnPath: returnPathOr(r, "noAuthReturnPath", "/"),
	}

	return views.Login(pageData).Render(r.Context(), w)
}

// isRejectedLogin reports whether err means the API turned the credentials
// down, as opposed to the API being unreachable.
func isRejectedLogin(err error) bool {
	if errors.Is(err, auth.ErrMissingCredentials) {
		return true
	}

	switch requests.StatusCode(err) {
	case http.StatusOK, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	default:
		return false
	}
}

// LoginPOST returns the handler for POST /self/login.
//
// On success the Access cookie is set and the user is sent to
// loginReturnPath. Otherwise the form is shown again with the reason.
func LoginPOST(svc *auth.Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		username := strings.TrimSpace(utils.GetFormValue(r, "username"))
		password := utils.GetFormValue(r, "password")
		returnPath := returnPathOr(r, "loginReturnPath", "/")

		signed, err := svc.SignIn(r.Context(), username, password)
		if err == nil {
			untrusted.SetCookie(w, r, cookie.AccessCookie, signed)
			http.Redirect(w, r, returnPath, http.StatusSeeOther)

			return nil
		}

		pageData := views.LoginData{
			Title:            i18n.Tr(r.Context(), "Log in"),
			Username:         username,
			LoginReturnPath:  returnPath,
			NoAuthReturnPath: returnPathOr(r, "noAuthReturnPath", "/"),
		}

		status := http.StatusUnauthorized

		if isRejectedLogin(err) {
			pageData.Error = i18n.Tr(r.Context(), "Wrong username or password.")
		} else {
			log.Ctx(r.Context()).Warn().
				Str("sys", "routes").
				Err(err).
				Msg("Login failed")

			status = http.StatusBadGateway
			pageData.Error = i18n.Tr(r.Context(), "The dictionary service is unavailable, please try again later.")
		}

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)

		return views.Login(pageData).Render(r.Context(), w)
	}
}

// LogoutPOST returns the handler for POST /self/logout. The API token is
// revoked when the cookie is still readable, and the cookie is always cleared.
func LogoutPOST(svc *auth.Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		svc.SignOut(r.Context(), untrusted.GetAccessToken(r))
		untrusted.ClearCookie(w, r, cookie.AccessCookie)

		http.Redirect(w, r, returnPathOr(r, "returnPath", "/"), http.StatusSeeOther)

		return nil
	}
}
