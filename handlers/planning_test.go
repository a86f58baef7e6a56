// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/planning"
	"github.com/JJansen36/plan/schema"
	"github.com/JJansen36/plan/store"
	"github.com/JJansen36/plan/testutil"
)

const rangeDays = 7

// seedSchedule loads one project/section/employee with work, capacity, and
// one assignment on the Tuesday of the current ISO week, so the initial
// range always covers the data.
func seedSchedule(fs *testutil.FakeStore) (monday, tuesday string) {
	start := planning.StartOfISOWeek(time.Now())
	monday = start.Format("2006-01-02")
	tuesday = start.AddDate(0, 0, 1).Format("2006-01-02")

	fs.Seed(schema.TableProjects, store.Record{
		"project_id": "p1", "offerno": "2024-001", "projectname": "Kastenwand",
	})
	fs.Seed(schema.TableSections, store.Record{
		"section_id": "s1", "project_id": "p1", "paragraaf": "Frames",
	})
	fs.Seed(schema.TableEmployees, store.Record{
		"werknemer_id": "e1", "naam": "Jan",
	})
	fs.Seed(schema.TableCapacity, store.Record{
		"werknemer_id": "e1", "datum": tuesday, "type": "werk", "uren": 8.0,
	})
	fs.Seed(schema.TableWork, store.Record{
		"section_id": "s1", "datum": tuesday, "type": "prod", "uren": 4.0,
	})
	fs.Seed(schema.TableAssignments, store.Record{
		"plan_id": "a1", "section_id": "s1", "datum": tuesday, "werknemer_id": "e1", "role": "production",
	})
	return monday, tuesday
}

func newTestController(fs *testutil.FakeStore) *planning.Controller {
	return planning.NewController(fs, rangeDays, planning.DefaultThresholds())
}

func TestPlanningGet(t *testing.T) {
	fs := testutil.NewFakeStore()
	monday, _ := seedSchedule(fs)
	h := NewPlanningHandler(newTestController(fs))

	w := httptest.NewRecorder()
	h.Get(w, testutil.MakeRequest(http.MethodGet, "/planning", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var grid models.Grid
	testutil.AssertJSON(t, w, &grid)
	if grid.Start != monday {
		t.Errorf("grid start = %q, want %q", grid.Start, monday)
	}
	if len(grid.Days) != rangeDays {
		t.Errorf("got %d days, want %d", len(grid.Days), rangeDays)
	}
	if len(grid.Rows) != 2 {
		t.Errorf("got %d rows, want project + section", len(grid.Rows))
	}

	// A second GET serves the published grid without re-fetching.
	fetches := len(fs.Queries())
	w = httptest.NewRecorder()
	h.Get(w, testutil.MakeRequest(http.MethodGet, "/planning", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if got := len(fs.Queries()); got != fetches {
		t.Errorf("second GET hit the store (%d -> %d queries)", fetches, got)
	}
}

func TestPlanningRefreshFailure(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedSchedule(fs)
	fs.FailSelect(schema.TableProjects, errors.New("down"))
	h := NewPlanningHandler(newTestController(fs))

	w := httptest.NewRecorder()
	h.Refresh(w, testutil.MakeRequest(http.MethodPost, "/planning/refresh", nil, nil))

	testutil.AssertStatus(t, w, http.StatusBadGateway)
}

func TestPlanningNavigation(t *testing.T) {
	fs := testutil.NewFakeStore()
	monday, _ := seedSchedule(fs)
	h := NewPlanningHandler(newTestController(fs))

	start, _ := time.Parse("2006-01-02", monday)
	nextMonday := start.AddDate(0, 0, rangeDays).Format("2006-01-02")

	w := httptest.NewRecorder()
	h.Next(w, testutil.MakeRequest(http.MethodPost, "/planning/next", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var grid models.Grid
	testutil.AssertJSON(t, w, &grid)
	if grid.Start != nextMonday {
		t.Errorf("after next, start = %q, want %q", grid.Start, nextMonday)
	}

	w = httptest.NewRecorder()
	h.Prev(w, testutil.MakeRequest(http.MethodPost, "/planning/prev", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &grid)
	if grid.Start != monday {
		t.Errorf("after prev, start = %q, want %q", grid.Start, monday)
	}

	w = httptest.NewRecorder()
	h.Today(w, testutil.MakeRequest(http.MethodPost, "/planning/today", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &grid)
	if grid.Start != monday {
		t.Errorf("after today, start = %q, want %q", grid.Start, monday)
	}
}
