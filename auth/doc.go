// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth is the client for the external session provider.

The provider exposes a GoTrue-compatible API: a password grant at
POST {base}/token?grant_type=password and token introspection at
GET {base}/user. This service holds no credentials of its own; it proxies
sign-in and verifies bearer tokens per request, with a one-minute
verification cache.

ErrNoSession covers both missing and rejected tokens; callers translate it
to 401.
*/
package auth
