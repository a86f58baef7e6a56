// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and view-model types shared
between the planning engine and the HTTP handlers.

# View Model

The central type is Grid: the complete day-indexed render model for one
visible range. It carries project/section rows of per-day cells, a capacity
row per employee, and a per-day summary (availability and classification).
The engine replaces the whole Grid on every render cycle.

# Conventions

Days are canonical "YYYY-MM-DD" strings everywhere. Work types and roles
are the normalized constants declared here, never raw source text.
*/
package models
