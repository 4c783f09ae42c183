// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package auth connects browser sessions to accounts held by the dictionary API.

The API owns users: it issues an opaque token on login and answers whether a
token is still valid. This package keeps that token in a signed session
cookie ([Sessions]) and asks the API about it as rarely as it can ([Checker]).
*/
package auth
