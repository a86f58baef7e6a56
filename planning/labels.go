// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"math"

	"github.com/JJansen36/plan/models"
)

// DayLabel picks the dominant work type for one day's entries: hours are
// summed per type and the strictly greatest sum wins. Ties resolve to the
// type encountered first in input order, which is deterministic given the
// stable ordering the store returns. No entries means an empty label.
func DayLabel(entries []WorkEntry) string {
	if len(entries) == 0 {
		return ""
	}

	totals := make(map[string]float64, 4)
	var order []string
	for _, e := range entries {
		if _, seen := totals[e.Type]; !seen {
			order = append(order, e.Type)
		}
		totals[e.Type] += e.Hours
	}

	best := ""
	bestHours := math.Inf(-1)
	for _, t := range order {
		if totals[t] > bestHours {
			best = t
			bestHours = totals[t]
		}
	}
	return best
}

// SectionLabels is the per-day label sequence for one section across the
// visible range.
func SectionLabels(idx WorkIndex, section string, days []Day) []string {
	labels := make([]string, len(days))
	byDay := idx[section]
	for i, d := range days {
		labels[i] = DayLabel(byDay[d.Key])
	}
	return labels
}

// ProjectLabels aggregates a project's label sequence from raw hours across
// all of its sections per day. This is a re-aggregation, not a vote among
// section labels: 2h+2h of production in two sections outweighs 3h of
// assembly in one.
func ProjectLabels(idx WorkIndex, sections []string, days []Day) []string {
	labels := make([]string, len(days))
	for i, d := range days {
		var merged []WorkEntry
		for _, s := range sections {
			merged = append(merged, idx[s][d.Key]...)
		}
		labels[i] = DayLabel(merged)
	}
	return labels
}

// CompressRuns merges maximal runs of consecutive identical labels
// (empty labels included) into spans. Expanding the spans reproduces the
// input exactly.
func CompressRuns(labels []string) []models.Span {
	var runs []models.Span
	for _, l := range labels {
		if len(runs) > 0 && runs[len(runs)-1].Label == l {
			runs[len(runs)-1].Length++
		} else {
			runs = append(runs, models.Span{Label: l, Length: 1})
		}
	}
	return runs
}

// ExpandRuns is the inverse of CompressRuns.
func ExpandRuns(runs []models.Span) []string {
	var labels []string
	for _, r := range runs {
		for i := 0; i < r.Length; i++ {
			labels = append(labels, r.Label)
		}
	}
	return labels
}

// buildCells turns a label sequence into grid cells. A label renders once
// at the start of its run; the run still occupies one cell per day so the
// grid stays aligned. The completion marker is an overlay independent of
// the runs, and assignment counts come from the assignment index.
func buildCells(labels []string, days []Day, completion string, countAt func(day string) int) []models.Cell {
	cells := make([]models.Cell, len(days))
	runs := CompressRuns(labels)

	i := 0
	for _, run := range runs {
		for j := 0; j < run.Length; j++ {
			cells[i] = models.Cell{
				Day:      days[i].Key,
				Label:    run.Label,
				RunStart: j == 0,
			}
			if j == 0 {
				cells[i].RunLength = run.Length
			}
			i++
		}
	}

	for i := range cells {
		if completion != "" && cells[i].Day == completion {
			cells[i].Deadline = true
		}
		if countAt != nil {
			cells[i].Assignments = countAt(cells[i].Day)
		}
	}
	return cells
}
