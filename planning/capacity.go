// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import "github.com/JJansen36/plan/models"

// Thresholds classify daily availability. A day is "ok" at or above Warn,
// "warn" below Warn but above Bad, and "bad" at or below Bad. The bad
// boundary is inclusive: availability of exactly Bad classifies as bad.
type Thresholds struct {
	Warn float64
	Bad  float64
}

// DefaultThresholds: any shortfall warns, four hours or more is bad.
func DefaultThresholds() Thresholds {
	return Thresholds{Warn: 0, Bad: -4}
}

// Classify maps an availability figure onto a status.
func Classify(availability float64, th Thresholds) string {
	switch {
	case availability >= th.Warn:
		return models.StatusOK
	case availability > th.Bad:
		return models.StatusWarn
	default:
		return models.StatusBad
	}
}

// DayCapacity is the summed capacity across all employees for one day.
func DayCapacity(idx CapacityIndex, day string) float64 {
	var total float64
	for _, byDay := range idx {
		total += byDay[day]
	}
	return total
}

// PlannedHours attributes planned hours per role for one day: every
// assignment claims the assigned employee's entire that-day capacity.
// Capacity is not split across simultaneous roles or sections, so one
// employee holding both roles deducts twice; the day summary makes that
// visible rather than hiding it.
func PlannedHours(assignments AssignmentIndex, capacity CapacityIndex, day string) (production, assembly float64) {
	for _, byDay := range assignments {
		rs, ok := byDay[day]
		if !ok {
			continue
		}
		for emp := range rs.Production {
			production += capacity[emp][day]
		}
		for emp := range rs.Assembly {
			assembly += capacity[emp][day]
		}
	}
	return production, assembly
}

// Summaries computes the per-day bottom line across the range:
// availability = capacity - planned production - planned assembly.
// A day with zero capacity and zero planned is availability 0, "ok".
func Summaries(days []Day, capacity CapacityIndex, assignments AssignmentIndex, th Thresholds) []models.DaySummary {
	out := make([]models.DaySummary, len(days))
	for i, d := range days {
		cap := DayCapacity(capacity, d.Key)
		prod, asm := PlannedHours(assignments, capacity, d.Key)
		avail := cap - prod - asm
		out[i] = models.DaySummary{
			Day:               d.Key,
			Capacity:          cap,
			PlannedProduction: prod,
			PlannedAssembly:   asm,
			Availability:      avail,
			Status:            Classify(avail, th),
		}
	}
	return out
}
