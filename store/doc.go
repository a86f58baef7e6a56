// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the tabular data-access layer: filtered reads, bulk
inserts, and delete-by-filter over flat key-value records.

Two backends implement the Store interface:

  - NewREST: a PostgREST-style HTTP API (the production store). Filters are
    encoded as query-string operators (col=eq.v, col=gte.v, col=lte.v).
  - Open: database/sql with dynamic column discovery, for "postgres"
    (lib/pq) and "sqlite" (modernc.org/sqlite). The sqlite backend creates
    the planning tables on open so a local instance works out of the box.

Records are map[string]any on purpose: the planning engine resolves field
names at runtime rather than binding to a fixed schema.
*/
package store
