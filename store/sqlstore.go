// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// sqlStore serves the Store contract from a SQL database without binding to
// a fixed schema: SELECT * plus rows.Columns() yields the same flat records
// the REST backend returns.
type sqlStore struct {
	db       *sql.DB
	postgres bool // placeholder dialect: $1.. vs ?
}

// Open connects a SQL-backed Store. driver is "postgres" or "sqlite". The
// sqlite backend bootstraps the planning tables so a fresh local database
// is usable immediately.
func Open(driver, dsn string) (Store, error) {
	var driverName string
	switch driver {
	case "postgres":
		driverName = "postgres"
	case "sqlite":
		driverName = "sqlite"
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s store: %w", driver, err)
	}

	s := &sqlStore{db: db, postgres: driver == "postgres"}
	if driver == "sqlite" {
		if err := s.bootstrap(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *sqlStore) Select(ctx context.Context, q Query) ([]Record, error) {
	if q.Table == "" {
		return nil, ErrNoTable
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(quoteIdent(q.Table))

	var args []any
	var conds []string
	for _, k := range sortedKeys(q.Eq) {
		args = append(args, q.Eq[k])
		conds = append(conds, quoteIdent(k)+" = "+s.placeholder(len(args)))
	}
	if q.DateColumn != "" && q.From != "" {
		args = append(args, q.From)
		conds = append(conds, quoteIdent(q.DateColumn)+" >= "+s.placeholder(len(args)))
	}
	if q.DateColumn != "" && q.To != "" {
		args = append(args, q.To)
		conds = append(conds, quoteIdent(q.DateColumn)+" <= "+s.placeholder(len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Record
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("select %s: scan: %w", q.Table, err)
		}
		rec := make(Record, len(cols))
		for i, c := range cols {
			rec[c] = normalizeCell(cells[i])
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *sqlStore) Insert(ctx context.Context, table string, rows []Record) error {
	if table == "" {
		return ErrNoTable
	}
	for _, row := range rows {
		cols := sortedKeys(row)
		if len(cols) == 0 {
			continue
		}
		quoted := make([]string, len(cols))
		holders := make([]string, len(cols))
		args := make([]any, len(cols))
		for i, c := range cols {
			quoted[i] = quoteIdent(c)
			holders[i] = s.placeholder(i + 1)
			args[i] = row[c]
		}
		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			quoteIdent(table), strings.Join(quoted, ", "), strings.Join(holders, ", "))
		if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, table string, eq map[string]any) error {
	if table == "" {
		return ErrNoTable
	}
	if len(eq) == 0 {
		return ErrUnboundDelete
	}

	var conds []string
	var args []any
	for _, k := range sortedKeys(eq) {
		args = append(args, eq[k])
		conds = append(conds, quoteIdent(k)+" = "+s.placeholder(len(args)))
	}
	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s", quoteIdent(table), strings.Join(conds, " AND "))
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func (s *sqlStore) placeholder(i int) string {
	if s.postgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// bootstrap creates the planning tables for a fresh local database.
// Safe to call multiple times - uses IF NOT EXISTS.
func (s *sqlStore) bootstrap() error {
	if _, err := s.db.Exec(bootstrapDDL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const bootstrapDDL = `
CREATE TABLE IF NOT EXISTS klanten (
    customer_id TEXT PRIMARY KEY,
    name_kl TEXT
);

CREATE TABLE IF NOT EXISTS projecten (
    project_id TEXT PRIMARY KEY,
    offerno TEXT,
    projectname TEXT,
    customer_id TEXT REFERENCES klanten(customer_id),
    completiondate TEXT
);

CREATE TABLE IF NOT EXISTS secties (
    section_id TEXT PRIMARY KEY,
    project_id TEXT REFERENCES projecten(project_id),
    paragraaf TEXT
);

CREATE TABLE IF NOT EXISTS werknemers (
    werknemer_id TEXT PRIMARY KEY,
    naam TEXT
);

CREATE TABLE IF NOT EXISTS capacity_entries (
    werknemer_id TEXT REFERENCES werknemers(werknemer_id),
    datum TEXT,
    type TEXT,
    uren REAL
);

CREATE INDEX IF NOT EXISTS idx_capacity_datum ON capacity_entries(datum);

CREATE TABLE IF NOT EXISTS section_work (
    section_id TEXT REFERENCES secties(section_id),
    datum TEXT,
    type TEXT,
    uren REAL
);

CREATE INDEX IF NOT EXISTS idx_section_work_datum ON section_work(datum);

CREATE TABLE IF NOT EXISTS project_plan (
    plan_id TEXT PRIMARY KEY,
    section_id TEXT,
    datum TEXT,
    werknemer_id TEXT,
    role TEXT
);

CREATE INDEX IF NOT EXISTS idx_project_plan_day ON project_plan(section_id, datum);
`

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeCell converts driver-specific scan results into the JSON-ish
// value space the REST backend produces.
func normalizeCell(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
