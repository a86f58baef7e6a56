// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

Handlers are small structs carrying their collaborators (the planning
controller, the store, the auth client), constructed once in the router:

  - PlanningHandler: grid retrieval and block-wise navigation
    (prev/next/today/refresh)
  - AssignmentHandler: reading and full-replace saving of the
    per-section/day assignment selection
  - ExportHandler: the current grid as an .xlsx workbook
  - ProjectHandler: the project list with customer names
  - SessionHandler: sign-in/session endpoints proxied to the auth provider

Handlers validate input, delegate to the planning engine, and translate
errors into JSON responses via the middleware helpers. Engine failures map
to 502 (the upstream store is unreachable or unhappy), superseded render
cycles to 409.
*/
package handlers
