// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
)

// Record is one flat row of unknown-but-stable-per-table shape. Field names
// are resolved downstream against candidate lists (package schema).
type Record = map[string]any

// Query selects rows from one table. From/To bound DateColumn inclusively
// when all three are set; Eq filters are exact matches; Limit caps the row
// count (0 means backend default).
type Query struct {
	Table      string
	DateColumn string
	From       string
	To         string
	Eq         map[string]any
	Limit      int
}

// Store is the tabular data-access layer the planning engine runs against.
// Select returns flat records; Insert appends; Delete removes every row
// matching the equality filters. There is no update and no transaction
// spanning calls.
type Store interface {
	Select(ctx context.Context, q Query) ([]Record, error)
	Insert(ctx context.Context, table string, rows []Record) error
	Delete(ctx context.Context, table string, eq map[string]any) error
}

var (
	ErrNoTable       = errors.New("query has no table")
	ErrUnboundDelete = errors.New("refusing delete without equality filters")
)
