// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides shared test helpers.

FakeStore is an in-memory store.Store with the same equality and
date-range filtering semantics as the real backends, plus per-operation
failure injection. NewAuthServer stands up an httptest auth provider and
returns a client pointed at it. The HTTP helpers build requests and
assert on recorded responses.

Everything here is hermetic: no test needs a database or a network.
*/
package testutil
