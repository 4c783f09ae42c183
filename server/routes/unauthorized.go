// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

// UnauthorizedError signals that the user must log in to proceed. It carries
// the return paths of the login flow.
//
// middleware.CatchError turns it into a 401 response showing the login prompt.
type UnauthorizedError struct {
	// NoAuthReturnPath is where the user goes when leaving the login flow.
	NoAuthReturnPath string
	// LoginReturnPath is where the user goes after logging in.
	LoginReturnPath string
}

func (e *UnauthorizedError) Error() string {
	return "unauthorized"
}

// NewUnauthorizedError returns an *UnauthorizedError.
//
// Handlers return it for actions that need a dictionary account, such as
// refreshing a cached entry.
func NewUnauthorizedError(noAuthReturnPath, loginReturnPath string) error {
	return &UnauthorizedError{
		NoAuthReturnPath: noAuthReturnPath,
		LoginReturnPath:  loginReturnPath,
	}
}
