// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the route table.

Routes use Go 1.22+ method-qualified patterns on the standard ServeMux.
Every route except POST /session, DELETE /session, and GET /health runs
behind middleware.RequireSession; everything runs behind the request
logger. Handlers receive their collaborators here, once, by constructor.
*/
package router
