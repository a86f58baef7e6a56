// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/schema"
	"github.com/JJansen36/plan/store"
	"github.com/JJansen36/plan/testutil"
)

func seedProjects(fs *testutil.FakeStore) {
	fs.Seed(schema.TableCustomers,
		store.Record{"customer_id": "c1", "name_kl": "Bakker BV"},
	)
	fs.Seed(schema.TableProjects,
		store.Record{"project_id": "p1", "offerno": "2024-001", "projectname": "Kastenwand", "customer_id": "c1"},
		store.Record{"project_id": "p2", "offerno": "2024-002", "projectname": "Balie", "customer_id": "c9"},
	)
}

func TestProjectList(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedProjects(fs)
	h := NewProjectHandler(fs)

	w := httptest.NewRecorder()
	h.List(w, testutil.MakeRequest(http.MethodGet, "/projects", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var out []models.ProjectSummary
	testutil.AssertJSON(t, w, &out)
	if len(out) != 2 {
		t.Fatalf("got %d projects, want 2", len(out))
	}
	if out[0].ID != "p1" || out[0].Number != "2024-001" || out[0].Customer != "Bakker BV" {
		t.Errorf("first project = %+v", out[0])
	}
	// Unknown customer fk degrades to an empty name.
	if out[1].Customer != "" {
		t.Errorf("second project customer = %q, want empty", out[1].Customer)
	}
}

func TestProjectListWithoutCustomers(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedProjects(fs)
	fs.FailSelect(schema.TableCustomers, errors.New("down"))
	h := NewProjectHandler(fs)

	w := httptest.NewRecorder()
	h.List(w, testutil.MakeRequest(http.MethodGet, "/projects", nil, nil))

	// Customer names are additive; the list still renders.
	testutil.AssertStatus(t, w, http.StatusOK)

	var out []models.ProjectSummary
	testutil.AssertJSON(t, w, &out)
	if len(out) != 2 {
		t.Fatalf("got %d projects, want 2", len(out))
	}
	for _, p := range out {
		if p.Customer != "" {
			t.Errorf("project %s has customer %q without a customer fetch", p.ID, p.Customer)
		}
	}
}

func TestProjectListFetchFailure(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.FailSelect(schema.TableProjects, errors.New("down"))
	h := NewProjectHandler(fs)

	w := httptest.NewRecorder()
	h.List(w, testutil.MakeRequest(http.MethodGet, "/projects", nil, nil))

	testutil.AssertStatus(t, w, http.StatusBadGateway)
}

func TestProjectListEmpty(t *testing.T) {
	h := NewProjectHandler(testutil.NewFakeStore())

	w := httptest.NewRecorder()
	h.List(w, testutil.MakeRequest(http.MethodGet, "/projects", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var out []models.ProjectSummary
	testutil.AssertJSON(t, w, &out)
	if out == nil || len(out) != 0 {
		t.Errorf("empty list = %v, want []", out)
	}
}
