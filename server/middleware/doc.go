// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP middleware of DialectFE and the
error-catching adapter used by every route handler.

The chain is assembled in router.RegisterMiddleware.
*/
package middleware
