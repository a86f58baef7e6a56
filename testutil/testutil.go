// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/JJansen36/plan/auth"
	"github.com/JJansen36/plan/store"
)

// FakeStore is a hermetic in-memory store.Store. Select supports the same
// equality and date-range filtering the real backends do (days compare
// lexicographically as YYYY-MM-DD strings); failures are injectable per
// operation for error-path tests.
type FakeStore struct {
	mu        sync.Mutex
	tables    map[string][]store.Record
	selectErr map[string]error
	insertErr error
	deleteErr error
	queries   []store.Query
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		tables:    make(map[string][]store.Record),
		selectErr: make(map[string]error),
	}
}

// Seed appends rows to a table.
func (f *FakeStore) Seed(table string, rows ...store.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		f.tables[table] = append(f.tables[table], copyRecord(r))
	}
}

// FailSelect makes every Select on table return err (nil clears it).
func (f *FakeStore) FailSelect(table string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.selectErr, table)
	} else {
		f.selectErr[table] = err
	}
}

// FailInsert makes every Insert return err (nil clears it).
func (f *FakeStore) FailInsert(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertErr = err
}

// FailDelete makes every Delete return err (nil clears it).
func (f *FakeStore) FailDelete(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteErr = err
}

// Rows returns a copy of a table's current contents.
func (f *FakeStore) Rows(table string) []store.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.Record, 0, len(f.tables[table]))
	for _, r := range f.tables[table] {
		out = append(out, copyRecord(r))
	}
	return out
}

// Queries returns every Select query seen so far, in order.
func (f *FakeStore) Queries() []store.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]store.Query(nil), f.queries...)
}

func (f *FakeStore) Select(ctx context.Context, q store.Query) ([]store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)

	if err := f.selectErr[q.Table]; err != nil {
		return nil, err
	}

	var out []store.Record
	for _, r := range f.tables[q.Table] {
		if !matchesEq(r, q.Eq) {
			continue
		}
		if q.DateColumn != "" {
			day := stringify(r[q.DateColumn])
			if q.From != "" && day < q.From {
				continue
			}
			if q.To != "" && day > q.To {
				continue
			}
		}
		out = append(out, copyRecord(r))
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *FakeStore) Insert(ctx context.Context, table string, rows []store.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, r := range rows {
		f.tables[table] = append(f.tables[table], copyRecord(r))
	}
	return nil
}

func (f *FakeStore) Delete(ctx context.Context, table string, eq map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if len(eq) == 0 {
		return store.ErrUnboundDelete
	}
	var kept []store.Record
	for _, r := range f.tables[table] {
		if !matchesEq(r, eq) {
			kept = append(kept, r)
		}
	}
	f.tables[table] = kept
	return nil
}

func matchesEq(r store.Record, eq map[string]any) bool {
	for k, v := range eq {
		if stringify(r[k]) != stringify(v) {
			return false
		}
	}
	return true
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func copyRecord(r store.Record) store.Record {
	dst := make(store.Record, len(r))
	for k, v := range r {
		dst[k] = v
	}
	return dst
}

// AssignmentKeys lists a table's (employee, role) pairs sorted, for
// comparing commit outcomes without caring about row ids.
func AssignmentKeys(rows []store.Record, employeeCol, roleCol string) []string {
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, stringify(r[employeeCol])+"/"+stringify(r[roleCol]))
	}
	sort.Strings(keys)
	return keys
}

// NewAuthServer fakes the session provider: the password grant accepts
// email/password, and /user accepts token. Returns a client pointed at it.
func NewAuthServer(t *testing.T, email, password, token string) *auth.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/token":
			var body struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.Email != email || body.Password != password {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": token,
				"token_type":   "bearer",
				"expires_in":   3600,
			})
		case r.Method == http.MethodGet && r.URL.Path == "/user":
			if r.Header.Get("Authorization") != "Bearer "+token {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "user-1", "email": email})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	return auth.NewClient(srv.URL, "anon-key")
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
