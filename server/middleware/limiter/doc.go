// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter throttles form submissions per client network.

Logins and markup previews are the only requests that cost the dictionary
API or the server noticeable work for a single click, so only unsafe methods
are counted. Clients are grouped by network (a /24 for IPv4 and a /64 for
IPv6 by default) so that rotating addresses inside one allocation does not
reset the budget.
*/
package limiter
