// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"fmt"
	"time"

	"github.com/JJansen36/plan/models"
)

// Day is one calendar day of a visible range, with the attributes the grid
// header needs. Recomputed per render, never stored.
type Day struct {
	Date    time.Time
	Key     string // canonical YYYY-MM-DD
	Week    int    // ISO-8601 week number
	Weekend bool
}

// BuildCalendar produces n consecutive days starting at start. Weekends are
// flagged, not skipped - the grid shows every day.
func BuildCalendar(start time.Time, n int) []Day {
	start = atMidnight(start)
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		_, week := d.ISOWeek()
		wd := d.Weekday()
		days = append(days, Day{
			Date:    d,
			Key:     d.Format(dayLayout),
			Week:    week,
			Weekend: wd == time.Saturday || wd == time.Sunday,
		})
	}
	return days
}

// MonthGroups merges contiguous days sharing a (month, year) pair, sizing
// the grouped month header.
func MonthGroups(days []Day) []models.Span {
	var groups []models.Span
	prev := ""
	for _, d := range days {
		label := d.Date.Format("January 2006")
		if len(groups) > 0 && label == prev {
			groups[len(groups)-1].Length++
		} else {
			groups = append(groups, models.Span{Label: label, Length: 1})
			prev = label
		}
	}
	return groups
}

// WeekGroups merges Monday-to-Monday runs. The first run is shorter when
// the range does not start on a Monday.
func WeekGroups(days []Day) []models.Span {
	var groups []models.Span
	for i, d := range days {
		if i == 0 || d.Date.Weekday() == time.Monday {
			groups = append(groups, models.Span{Label: fmt.Sprintf("wk %d", d.Week), Length: 1})
		} else {
			groups[len(groups)-1].Length++
		}
	}
	return groups
}

// StartOfISOWeek returns the Monday of t's ISO week. "Jump to today"
// resets the range start here.
func StartOfISOWeek(t time.Time) time.Time {
	t = atMidnight(t)
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return t.AddDate(0, 0, 1-wd)
}

// NextStart and PrevStart page the range block-wise: the start shifts by
// exactly the range length, never by single days.
func NextStart(start time.Time, rangeDays int) time.Time {
	return atMidnight(start).AddDate(0, 0, rangeDays)
}

func PrevStart(start time.Time, rangeDays int) time.Time {
	return atMidnight(start).AddDate(0, 0, -rangeDays)
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
