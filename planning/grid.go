// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/schema"
	"github.com/JJansen36/plan/store"
)

// maxRows caps every fetch. Ranges span a few dozen days and collections
// are bounded in the hundreds; anything larger indicates a filter bug.
const maxRows = 5000

// Datasets are the raw collections one render cycle works from, fetched in
// full before any aggregation starts.
type Datasets struct {
	Projects    []store.Record
	Sections    []store.Record
	Employees   []store.Record
	Capacity    []store.Record
	Work        []store.Record
	Assignments []store.Record
}

// FetchDatasets loads everything a render cycle needs. The five scheduling
// datasets are required: any failure aborts the cycle and the previous
// render stays up. The assignments fetch is optional - on failure the cycle
// proceeds with an empty set, because assignments are additive to the core
// display. Date-range filters use the schema's primary day column; stores
// with a variant day column return the full table and the indexer filters
// by parsed day instead.
func FetchDatasets(ctx context.Context, st store.Store, from, to string) (Datasets, error) {
	var ds Datasets
	var err error

	if ds.Projects, err = st.Select(ctx, store.Query{Table: schema.TableProjects, Limit: maxRows}); err != nil {
		return ds, fmt.Errorf("fetch projects: %w", err)
	}
	if ds.Sections, err = st.Select(ctx, store.Query{Table: schema.TableSections, Limit: maxRows}); err != nil {
		return ds, fmt.Errorf("fetch sections: %w", err)
	}
	if ds.Employees, err = st.Select(ctx, store.Query{Table: schema.TableEmployees, Limit: maxRows}); err != nil {
		return ds, fmt.Errorf("fetch employees: %w", err)
	}
	if ds.Capacity, err = st.Select(ctx, store.Query{
		Table: schema.TableCapacity, DateColumn: schema.CapacityDay[0], From: from, To: to, Limit: maxRows,
	}); err != nil {
		return ds, fmt.Errorf("fetch capacity entries: %w", err)
	}
	if ds.Work, err = st.Select(ctx, store.Query{
		Table: schema.TableWork, DateColumn: schema.WorkDay[0], From: from, To: to, Limit: maxRows,
	}); err != nil {
		return ds, fmt.Errorf("fetch work entries: %w", err)
	}

	ds.Assignments, err = st.Select(ctx, store.Query{
		Table: schema.TableAssignments, DateColumn: schema.AssignmentDay[0], From: from, To: to, Limit: maxRows,
	})
	if err != nil {
		slog.Warn("assignments fetch failed, rendering without", "error", err)
		ds.Assignments = nil
	}

	return ds, nil
}

// BuildGrid assembles the full render model from fetched datasets. Pure:
// no I/O, no shared state, wholesale output.
func BuildGrid(ds Datasets, days []Day, th Thresholds) models.Grid {
	workIdx := BuildWorkIndex(ds.Work)
	capIdx := BuildCapacityIndex(ds.Capacity)
	assignIdx := BuildAssignmentIndex(ds.Assignments)

	grid := models.Grid{
		Days:        make([]models.Day, len(days)),
		MonthGroups: MonthGroups(days),
		WeekGroups:  WeekGroups(days),
		Summary:     Summaries(days, capIdx, assignIdx, th),
	}
	if len(days) > 0 {
		grid.Start = days[0].Key
	}
	for i, d := range days {
		grid.Days[i] = models.Day{Date: d.Key, Week: d.Week, Weekend: d.Weekend}
	}

	grid.Rows = buildRows(ds, workIdx, assignIdx, days)
	grid.Capacity = buildCapacityRows(ds.Employees, capIdx, days)
	return grid
}

// buildRows produces one project header row plus one row per section, in
// input order. Section-to-project linkage matches the section's project fk
// against the project's pk; an unresolvable fk degrades to projects without
// sections rather than failing.
func buildRows(ds Datasets, workIdx WorkIndex, assignIdx AssignmentIndex, days []Day) []models.GridRow {
	projID := ResolveFrom(ds.Projects, schema.ProjectID)
	projNo := ResolveFrom(ds.Projects, schema.ProjectNumber)
	projName := ResolveFrom(ds.Projects, schema.ProjectName)
	projDone := ResolveFrom(ds.Projects, schema.ProjectCompletion)
	secID := ResolveFrom(ds.Sections, schema.SectionID)
	secProj := ResolveFrom(ds.Sections, schema.SectionProjectFK)
	secName := ResolveFrom(ds.Sections, schema.SectionName)

	type sectionInfo struct {
		id    string
		title string
	}
	byProject := make(map[string][]sectionInfo)
	for _, s := range ds.Sections {
		id := StringField(s, secID)
		if id == "" {
			continue
		}
		parent := StringField(s, secProj)
		byProject[parent] = append(byProject[parent], sectionInfo{
			id:    id,
			title: StringField(s, secName),
		})
	}

	var rows []models.GridRow
	for _, p := range ds.Projects {
		id := StringField(p, projID)
		if id == "" {
			continue
		}
		sections := byProject[id]
		sectionIDs := make([]string, len(sections))
		for i, s := range sections {
			sectionIDs[i] = s.id
		}

		completion := ""
		if day, ok := dayField(p, projDone); ok {
			completion = day
		}

		title := StringField(p, projNo)
		if name := StringField(p, projName); name != "" {
			if title != "" {
				title += " - "
			}
			title += name
		}

		projectCount := func(day string) int {
			n := 0
			for _, sid := range sectionIDs {
				n += assignIdx.At(sid, day).Count()
			}
			return n
		}
		rows = append(rows, models.GridRow{
			Kind:      models.RowProject,
			ProjectID: id,
			Title:     title,
			Cells:     buildCells(ProjectLabels(workIdx, sectionIDs, days), days, completion, projectCount),
		})

		for _, s := range sections {
			sid := s.id
			rows = append(rows, models.GridRow{
				Kind:      models.RowSection,
				ProjectID: id,
				SectionID: sid,
				Title:     s.title,
				Cells: buildCells(SectionLabels(workIdx, sid, days), days, "", func(day string) int {
					return assignIdx.At(sid, day).Count()
				}),
			})
		}
	}
	return rows
}

// buildCapacityRows produces one row per employee in input order, with the
// summed available hours per visible day.
func buildCapacityRows(employees []store.Record, capIdx CapacityIndex, days []Day) []models.CapacityRow {
	empID := ResolveFrom(employees, schema.EmployeeID)
	empName := ResolveFrom(employees, schema.EmployeeName)

	var out []models.CapacityRow
	for _, e := range employees {
		id := StringField(e, empID)
		if id == "" {
			continue
		}
		row := models.CapacityRow{
			EmployeeID: id,
			Name:       StringField(e, empName),
			Hours:      make([]float64, len(days)),
		}
		for i, d := range days {
			h := capIdx[id][d.Key]
			row.Hours[i] = h
			row.Total += h
		}
		out = append(out, row)
	}
	return out
}
