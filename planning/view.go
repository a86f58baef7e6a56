// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/schema"
	"github.com/JJansen36/plan/store"
)

// ErrSuperseded reports a render cycle whose results were discarded because
// a newer cycle started while it was fetching.
var ErrSuperseded = errors.New("render cycle superseded")

// Controller owns the view state of the planning grid: the visible range
// and the last rendered model. Rapid navigation can overlap fetch cycles;
// each cycle is tagged with a generation and only the latest generation may
// publish its grid, so a stale slow response never overwrites a fresh one.
type Controller struct {
	store      store.Store
	rangeDays  int
	thresholds Thresholds
	now        func() time.Time

	mu    sync.Mutex
	start time.Time
	gen   uint64
	grid  *models.Grid
}

// NewController starts the visible range at the Monday of the current ISO
// week, rangeDays long.
func NewController(st store.Store, rangeDays int, th Thresholds) *Controller {
	c := &Controller{
		store:      st,
		rangeDays:  rangeDays,
		thresholds: th,
		now:        time.Now,
	}
	c.start = StartOfISOWeek(c.now())
	return c
}

// Grid returns the last rendered model, nil before the first render.
func (c *Controller) Grid() *models.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid
}

// Refresh runs a full render cycle for the current range: fetch all
// datasets, aggregate, and publish the grid wholesale. On a required-fetch
// failure the previous grid stays published. A cycle that was overtaken by
// a newer one returns ErrSuperseded and publishes nothing.
func (c *Controller) Refresh(ctx context.Context) (*models.Grid, error) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	start := c.start
	n := c.rangeDays
	c.mu.Unlock()

	days := BuildCalendar(start, n)
	from, to := days[0].Key, days[len(days)-1].Key

	ds, err := FetchDatasets(ctx, c.store, from, to)
	if err != nil {
		return nil, err
	}

	grid := BuildGrid(ds, days, c.thresholds)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil, ErrSuperseded
	}
	c.grid = &grid
	return &grid, nil
}

// Next pages one block forward and re-renders.
func (c *Controller) Next(ctx context.Context) (*models.Grid, error) {
	c.mu.Lock()
	c.start = NextStart(c.start, c.rangeDays)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Prev pages one block back and re-renders.
func (c *Controller) Prev(ctx context.Context) (*models.Grid, error) {
	c.mu.Lock()
	c.start = PrevStart(c.start, c.rangeDays)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Today resets the range to the Monday of the current ISO week and
// re-renders.
func (c *Controller) Today(ctx context.Context) (*models.Grid, error) {
	c.mu.Lock()
	c.start = StartOfISOWeek(c.now())
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// OpenEditor fetches the current assignments for one section/day and
// returns an open editing session seeded with them. The read goes to the
// store, not the rendered grid, so the session starts from fresh data.
func (c *Controller) OpenEditor(ctx context.Context, section, day string) (*Editor, error) {
	rows, err := c.store.Select(ctx, store.Query{
		Table:      schema.TableAssignments,
		DateColumn: schema.AssignmentDay[0],
		From:       day,
		To:         day,
		Limit:      maxRows,
	})
	if err != nil {
		return nil, err
	}

	cols := ResolveAssignmentColumns(rows)
	idx := BuildAssignmentIndex(rows)

	ed := NewEditor(c.store, cols)
	ed.Open(section, day, idx.At(section, day))
	return ed, nil
}
