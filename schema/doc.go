// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package schema declares the table names and candidate column names of the
planning database.

The backing store predates this service and its exact column names are not
guaranteed: some deployments expose `section_id`, others `id`; dates may be
stored under `datum` or `date`. Every logical field therefore carries an
ordered candidate list, and the planning engine resolves each list against a
sample record once per collection (see planning.ResolveField).

Nothing in this package talks to the store; it is configuration only, the
equivalent of a column-mapping file.
*/
package schema
