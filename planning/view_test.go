// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/schema"
	"github.com/JJansen36/plan/store"
	"github.com/JJansen36/plan/testutil"
)

// seedSchedule loads one project with one section, one employee, and data
// on Tuesday 2026-03-10.
func seedSchedule(fs *testutil.FakeStore) {
	fs.Seed(schema.TableProjects, store.Record{
		"project_id": "p1", "offerno": "2024-001", "projectname": "Kastenwand", "completiondate": "2026-03-12",
	})
	fs.Seed(schema.TableSections, store.Record{
		"section_id": "s1", "project_id": "p1", "paragraaf": "Frames",
	})
	fs.Seed(schema.TableEmployees, store.Record{
		"werknemer_id": "e1", "naam": "Jan",
	})
	fs.Seed(schema.TableCapacity, store.Record{
		"werknemer_id": "e1", "datum": "2026-03-10", "type": "werk", "uren": 8.0,
	})
	fs.Seed(schema.TableWork, store.Record{
		"section_id": "s1", "datum": "2026-03-10", "type": "prod", "uren": 4.0,
	})
	fs.Seed(schema.TableAssignments, store.Record{
		"plan_id": "a1", "section_id": "s1", "datum": "2026-03-10", "werknemer_id": "e1", "role": "production",
	})
}

// testController pins the clock to Wednesday 2026-03-11, so the range
// starts on Monday 2026-03-09.
func testController(fs *testutil.FakeStore, rangeDays int) *Controller {
	c := NewController(fs, rangeDays, DefaultThresholds())
	c.now = func() time.Time { return day(2026, time.March, 11) }
	c.start = StartOfISOWeek(c.now())
	return c
}

func TestControllerRefresh(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedSchedule(fs)
	c := testController(fs, 7)

	if c.Grid() != nil {
		t.Fatal("grid published before first render")
	}

	grid, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() = %v", err)
	}
	if grid.Start != "2026-03-09" {
		t.Errorf("grid start = %q, want 2026-03-09", grid.Start)
	}
	if len(grid.Days) != 7 || len(grid.Summary) != 7 {
		t.Fatalf("days/summary = %d/%d, want 7/7", len(grid.Days), len(grid.Summary))
	}

	// One project header row plus one section row.
	if len(grid.Rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(grid.Rows), grid.Rows)
	}
	proj, sec := grid.Rows[0], grid.Rows[1]
	if proj.Kind != models.RowProject || proj.Title != "2024-001 - Kastenwand" {
		t.Errorf("project row = %+v", proj)
	}
	if sec.Kind != models.RowSection || sec.SectionID != "s1" || sec.Title != "Frames" {
		t.Errorf("section row = %+v", sec)
	}

	// Tuesday carries the work label and the assignment count; Thursday the
	// completion marker on the project row only.
	tue, thu := 1, 3
	if sec.Cells[tue].Label != models.WorkProduction || sec.Cells[tue].Assignments != 1 {
		t.Errorf("section tuesday cell = %+v", sec.Cells[tue])
	}
	if !proj.Cells[thu].Deadline {
		t.Errorf("project thursday cell = %+v, want deadline", proj.Cells[thu])
	}
	if sec.Cells[thu].Deadline {
		t.Errorf("completion marker leaked onto the section row")
	}

	// Capacity row and summary: 8h capacity fully claimed by the assignment.
	if len(grid.Capacity) != 1 || grid.Capacity[0].Name != "Jan" || grid.Capacity[0].Total != 8 {
		t.Errorf("capacity rows = %+v", grid.Capacity)
	}
	s := grid.Summary[tue]
	if s.Capacity != 8 || s.PlannedProduction != 8 || s.Availability != 0 || s.Status != models.StatusOK {
		t.Errorf("tuesday summary = %+v", s)
	}

	if got := c.Grid(); got != grid {
		t.Errorf("Grid() did not return the published render")
	}
}

func TestControllerRequiredFetchFailureKeepsPreviousGrid(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedSchedule(fs)
	c := testController(fs, 7)

	first, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	fs.FailSelect(schema.TableProjects, errors.New("down"))
	if _, err := c.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() succeeded with projects fetch failing")
	}
	if got := c.Grid(); got != first {
		t.Errorf("failed cycle replaced the published grid")
	}
}

func TestControllerAssignmentsFetchOptional(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedSchedule(fs)
	fs.FailSelect(schema.TableAssignments, errors.New("down"))
	c := testController(fs, 7)

	grid, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() = %v, want success without assignments", err)
	}
	if s := grid.Summary[1]; s.PlannedProduction != 0 || s.Availability != 8 {
		t.Errorf("summary without assignments = %+v", s)
	}
}

func TestControllerNavigation(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedSchedule(fs)
	c := testController(fs, 7)

	ctx := context.Background()

	grid, err := c.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if grid.Start != "2026-03-16" {
		t.Errorf("after Next, start = %q, want 2026-03-16", grid.Start)
	}

	grid, err = c.Prev(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if grid.Start != "2026-03-09" {
		t.Errorf("after Prev, start = %q, want 2026-03-09", grid.Start)
	}

	if _, err := c.Prev(ctx); err != nil {
		t.Fatal(err)
	}
	grid, err = c.Today(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if grid.Start != "2026-03-09" {
		t.Errorf("after Today, start = %q, want 2026-03-09", grid.Start)
	}
}

// gateStore blocks the first projects fetch until released, so a second
// render cycle can overtake the first.
type gateStore struct {
	store.Store
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gateStore) Select(ctx context.Context, q store.Query) ([]store.Record, error) {
	if q.Table == schema.TableProjects {
		blocked := false
		g.once.Do(func() { blocked = true })
		if blocked {
			close(g.entered)
			<-g.release
		}
	}
	return g.Store.Select(ctx, q)
}

func TestControllerStaleCycleDiscarded(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedSchedule(fs)
	gs := &gateStore{
		Store:   fs,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := testController(fs, 7)
	c.store = gs

	type result struct {
		grid *models.Grid
		err  error
	}
	done := make(chan result, 1)
	go func() {
		grid, err := c.Refresh(context.Background())
		done <- result{grid, err}
	}()

	// Wait until the first cycle is mid-fetch, then overtake it.
	<-gs.entered
	fresh, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	close(gs.release)
	stale := <-done

	if !errors.Is(stale.err, ErrSuperseded) {
		t.Errorf("stale cycle err = %v, want ErrSuperseded", stale.err)
	}
	if got := c.Grid(); got != fresh {
		t.Errorf("published grid is not the fresh render")
	}
}

func TestOpenEditor(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedSchedule(fs)
	c := testController(fs, 7)

	ed, err := c.OpenEditor(context.Background(), "s1", "2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if ed.State() != EditorOpen {
		t.Fatalf("state = %v, want open", ed.State())
	}

	sel := ed.Selection()
	if sel.SectionID != "s1" || sel.Day != "2026-03-10" {
		t.Errorf("selection = %+v", sel)
	}
	if !reflect.DeepEqual(sel.Production, []string{"e1"}) || len(sel.Assembly) != 0 {
		t.Errorf("selection = %+v, want production [e1]", sel)
	}
}

func TestOpenEditorFetchFailure(t *testing.T) {
	fs := testutil.NewFakeStore()
	fs.FailSelect(schema.TableAssignments, errors.New("down"))
	c := testController(fs, 7)

	if _, err := c.OpenEditor(context.Background(), "s1", "2026-03-10"); err == nil {
		t.Fatal("OpenEditor() succeeded with the assignments fetch failing")
	}
}
