// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

WithLogging logs method, path, status, and duration per request.
RequireSession verifies Authorization bearer tokens against the auth
provider and rejects unauthenticated requests with 401. JSONResponse and
ErrorResponse standardize response encoding; CORS handles cross-origin
requests from the front end, preflights included.
*/
package middleware
