// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package planning is the aggregation and grid-construction engine.

# Pipeline

Data flows one way for display: raw records from the store are indexed
(BuildWorkIndex, BuildCapacityIndex, BuildAssignmentIndex), aggregated into
per-day labels and runs (DayLabel, CompressRuns), combined with capacity
into availability figures (Summaries), and assembled into a models.Grid
(BuildGrid). Edits flow the other way: an Editor session reads the current
assignment set, mutates a working copy, and commits a full replace, after
which the whole pipeline re-runs.

# Defensive field access

The store's column names are not statically known. ResolveField probes an
ordered candidate list against a sample record once per collection; all
downstream code works with resolved keys only. A miss is never an error -
lookups through the fallback key yield empty groupings.

# Malformed data

Rows without a resolvable identifier or a parsable day are dropped from
indexing silently. Every index is rebuilt from scratch each cycle; there is
no incremental update path, and none is needed at these collection sizes.

# View state

Controller owns the visible range and the last rendered grid. Render
cycles carry a generation tag; a cycle overtaken by a newer navigation
discards its result (ErrSuperseded) instead of publishing a stale grid.
*/
package planning
