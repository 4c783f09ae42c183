// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package untrusted reads and writes the cookies of a request.
//
// Every value read here comes from the browser and must be validated by the
// caller: the session token by auth.Sessions, the language by package i18n.
package untrusted
