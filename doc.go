// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the plan API server.

Plan renders a multi-week capacity/production planning grid for projects
composed of work sections, cross-referenced against per-employee capacity
and explicit worker-to-task assignments.

# Starting the Server

The server reads configuration from a .env file, environment variables, or
CLI flags:

	STORE_BACKEND=rest STORE_URL=https://x.supabase.co/rest/v1 go run main.go

Or, against a local sqlite file:

	go run main.go -b sqlite -s plan.db

See package cliparse for the full list of settings.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - planning: the aggregation engine (indexes, calendar, labels, capacity,
    assignment editing, view state)
  - store: tabular data access (PostgREST, postgres, or sqlite backends)
  - schema: table names and candidate column lists
  - auth: client for the external session provider
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: logging, session guard, JSON helpers
  - models: request/response and view-model types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
