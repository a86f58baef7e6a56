// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// restStore talks to a PostgREST-compatible API (Supabase's data layer).
type restStore struct {
	base   string // e.g. https://project.supabase.co/rest/v1
	apiKey string
	client *http.Client
}

// NewREST returns a Store backed by a PostgREST endpoint. baseURL is the
// REST root (including the /rest/v1 prefix on Supabase); apiKey is sent as
// both the apikey header and a bearer token.
func NewREST(baseURL, apiKey string) Store {
	return &restStore{
		base:   strings.TrimRight(baseURL, "/"),
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *restStore) Select(ctx context.Context, q Query) ([]Record, error) {
	if q.Table == "" {
		return nil, ErrNoTable
	}

	params := url.Values{}
	params.Set("select", "*")
	for k, v := range q.Eq {
		params.Set(k, "eq."+formatFilterValue(v))
	}
	if q.DateColumn != "" && q.From != "" {
		params.Add(q.DateColumn, "gte."+q.From)
	}
	if q.DateColumn != "" && q.To != "" {
		params.Add(q.DateColumn, "lte."+q.To)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL(q.Table)+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, restError("select", q.Table, resp)
	}

	var rows []Record
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("select %s: decode: %w", q.Table, err)
	}
	return rows, nil
}

func (s *restStore) Insert(ctx context.Context, table string, rows []Record) error {
	if table == "" {
		return ErrNoTable
	}
	if len(rows) == 0 {
		return nil
	}

	body, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tableURL(table), bytes.NewReader(body))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return restError("insert", table, resp)
	}
	return nil
}

func (s *restStore) Delete(ctx context.Context, table string, eq map[string]any) error {
	if table == "" {
		return ErrNoTable
	}
	if len(eq) == 0 {
		return ErrUnboundDelete
	}

	params := url.Values{}
	for k, v := range eq {
		params.Set(k, "eq."+formatFilterValue(v))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.tableURL(table)+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	s.setHeaders(req)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return restError("delete", table, resp)
	}
	return nil
}

func (s *restStore) tableURL(table string) string {
	return s.base + "/" + url.PathEscape(table)
}

func (s *restStore) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
}

func restError(op, table string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return fmt.Errorf("%s %s: status %d: %s", op, table, resp.StatusCode, strings.TrimSpace(string(snippet)))
}

// formatFilterValue renders a filter operand the way PostgREST expects.
// Numeric identifiers arrive as float64 after a JSON round trip; they must
// not pick up a decimal point.
func formatFilterValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
