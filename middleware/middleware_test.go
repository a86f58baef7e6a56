// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/testutil"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer tok-1", "tok-1"},
		{"lowercase scheme", "bearer tok-1", "tok-1"},
		{"padded", "Bearer  tok-1 ", "tok-1"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic dXNlcg==", ""},
		{"scheme only", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			r := testutil.MakeRequest(http.MethodGet, "/", nil, headers)
			if got := BearerToken(r); got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	client := testutil.NewAuthServer(t, "jan@example.com", "geheim", "tok-1")

	var seen bool
	handler := RequireSession(client, func(w http.ResponseWriter, r *http.Request) {
		seen = true
		user, ok := SessionUser(r)
		if !ok || user.Email != "jan@example.com" {
			t.Errorf("SessionUser() = (%+v, %v)", user, ok)
		}
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest(http.MethodGet, "/planning", nil, map[string]string{
		"Authorization": "Bearer tok-1",
	}))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !seen {
		t.Error("inner handler never ran")
	}
}

func TestRequireSessionMissingToken(t *testing.T) {
	client := testutil.NewAuthServer(t, "jan@example.com", "geheim", "tok-1")
	handler := RequireSession(client, func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler ran without a token")
	})

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest(http.MethodGet, "/planning", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestRequireSessionInvalidToken(t *testing.T) {
	client := testutil.NewAuthServer(t, "jan@example.com", "geheim", "tok-1")
	handler := RequireSession(client, func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler ran with a rejected token")
	})

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest(http.MethodGet, "/planning", nil, map[string]string{
		"Authorization": "Bearer forged",
	}))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestSessionUserAbsent(t *testing.T) {
	r := testutil.MakeRequest(http.MethodGet, "/", nil, nil)
	if _, ok := SessionUser(r); ok {
		t.Error("SessionUser() found a user on a bare request")
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"status": "ok"})

	testutil.AssertStatus(t, w, http.StatusCreated)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]string
	testutil.AssertJSON(t, w, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "no such project")

	testutil.AssertStatus(t, w, http.StatusNotFound)

	var body models.ErrorResponse
	testutil.AssertJSON(t, w, &body)
	if body.Error != "Not Found" || body.Message != "no such project" {
		t.Errorf("body = %+v", body)
	}
}

func TestWithLoggingPreservesStatus(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest(http.MethodGet, "/", nil, nil))
	testutil.AssertStatus(t, w, http.StatusTeapot)
}

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS(inner)

	// Preflight never reaches the inner handler.
	w := httptest.NewRecorder()
	r := testutil.MakeRequest(http.MethodOptions, "/planning", nil, map[string]string{
		"Origin": "http://localhost:5173",
	})
	handler.ServeHTTP(w, r)

	testutil.AssertStatus(t, w, http.StatusOK)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Error("Allow-Headers missing")
	}

	// Plain requests pass through with the headers attached.
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/planning", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin without Origin header = %q", got)
	}
}
