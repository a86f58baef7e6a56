// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"strings"

	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/schema"
	"github.com/JJansen36/plan/store"
)

// WorkEntry is one dated labor row after field resolution and work-type
// normalization.
type WorkEntry struct {
	Section string
	Day     string
	Type    string
	Hours   float64
}

// WorkIndex groups work entries by section id, then canonical day.
type WorkIndex map[string]map[string][]WorkEntry

// CapacityIndex holds summed available hours by employee id, then day.
// Capacity is always additive; individual entries are never itemized.
type CapacityIndex map[string]map[string]float64

// RoleSet is the assignment state for one section/day: the employee ids
// scheduled per role. Sets, not counts - assigning the same employee twice
// is idempotent.
type RoleSet struct {
	Production map[string]struct{}
	Assembly   map[string]struct{}
}

// AssignmentIndex groups role sets by section id, then day.
type AssignmentIndex map[string]map[string]RoleSet

// NormalizeWorkType folds free-form source text into the closed work-type
// set. The source schema is Dutch: wvb (werkvoorbereiding), prod
// (productie), mont (montage), lever (levering), reis.
func NormalizeWorkType(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "wvb"),
		strings.HasPrefix(s, "werkvoorbereiding"),
		strings.HasPrefix(s, "voorbereiding"),
		strings.HasPrefix(s, "prep"):
		return models.WorkPreparation
	case strings.HasPrefix(s, "prod"):
		return models.WorkProduction
	case strings.HasPrefix(s, "mont"), strings.HasPrefix(s, "assembl"):
		return models.WorkAssembly
	case strings.HasPrefix(s, "lever"), strings.HasPrefix(s, "deliver"), s == "reis":
		return models.WorkDelivery
	default:
		return models.WorkOther
	}
}

// NormalizeRole maps free-form role text onto the tracked roles. Roles
// outside {production, assembly} report ok=false and are skipped.
func NormalizeRole(raw string) (string, bool) {
	switch NormalizeWorkType(raw) {
	case models.WorkProduction:
		return models.RoleProduction, true
	case models.WorkAssembly:
		return models.RoleAssembly, true
	default:
		return "", false
	}
}

// BuildWorkIndex indexes work-entry rows by section and day. Rows with an
// unresolvable section id or day are dropped silently - malformed but
// skippable data, not an error.
func BuildWorkIndex(rows []store.Record) WorkIndex {
	idx := make(WorkIndex)
	if len(rows) == 0 {
		return idx
	}

	secKey := ResolveFrom(rows, schema.WorkSectionFK)
	dayKey := ResolveFrom(rows, schema.WorkDay)
	typeKey := ResolveFrom(rows, schema.WorkType)
	hoursKey := ResolveFrom(rows, schema.WorkHours)

	for _, r := range rows {
		sec := StringField(r, secKey)
		if sec == "" {
			continue
		}
		day, ok := dayField(r, dayKey)
		if !ok {
			continue
		}
		e := WorkEntry{
			Section: sec,
			Day:     day,
			Type:    NormalizeWorkType(StringField(r, typeKey)),
			Hours:   numberField(r, hoursKey),
		}
		byDay := idx[sec]
		if byDay == nil {
			byDay = make(map[string][]WorkEntry)
			idx[sec] = byDay
		}
		byDay[day] = append(byDay[day], e)
	}
	return idx
}

// BuildCapacityIndex sums capacity hours by employee and day. The type
// taxonomy reserves room for absence entries; today every recognized type
// counts as available work, matching the source system.
func BuildCapacityIndex(rows []store.Record) CapacityIndex {
	idx := make(CapacityIndex)
	if len(rows) == 0 {
		return idx
	}

	empKey := ResolveFrom(rows, schema.CapacityEmployeeFK)
	dayKey := ResolveFrom(rows, schema.CapacityDay)
	typeKey := ResolveFrom(rows, schema.CapacityType)
	hoursKey := ResolveFrom(rows, schema.CapacityHours)

	for _, r := range rows {
		emp := StringField(r, empKey)
		if emp == "" {
			continue
		}
		day, ok := dayField(r, dayKey)
		if !ok {
			continue
		}
		if !countsAsCapacity(StringField(r, typeKey)) {
			continue
		}
		byDay := idx[emp]
		if byDay == nil {
			byDay = make(map[string]float64)
			idx[emp] = byDay
		}
		byDay[day] += numberField(r, hoursKey)
	}
	return idx
}

// countsAsCapacity is the hook for excluding absence/leave entry types from
// the capacity sum once the taxonomy grows them.
func countsAsCapacity(string) bool { return true }

// BuildAssignmentIndex groups assignment rows into per-role employee sets
// by section and day. Rows with an unrecognized role are skipped.
func BuildAssignmentIndex(rows []store.Record) AssignmentIndex {
	idx := make(AssignmentIndex)
	if len(rows) == 0 {
		return idx
	}

	secKey := ResolveFrom(rows, schema.AssignmentSectionFK)
	dayKey := ResolveFrom(rows, schema.AssignmentDay)
	empKey := ResolveFrom(rows, schema.AssignmentEmployeeFK)
	roleKey := ResolveFrom(rows, schema.AssignmentRole)

	for _, r := range rows {
		sec := StringField(r, secKey)
		emp := StringField(r, empKey)
		if sec == "" || emp == "" {
			continue
		}
		day, ok := dayField(r, dayKey)
		if !ok {
			continue
		}
		role, ok := NormalizeRole(StringField(r, roleKey))
		if !ok {
			continue
		}
		byDay := idx[sec]
		if byDay == nil {
			byDay = make(map[string]RoleSet)
			idx[sec] = byDay
		}
		rs, ok := byDay[day]
		if !ok {
			rs = RoleSet{
				Production: make(map[string]struct{}),
				Assembly:   make(map[string]struct{}),
			}
			byDay[day] = rs
		}
		switch role {
		case models.RoleProduction:
			rs.Production[emp] = struct{}{}
		case models.RoleAssembly:
			rs.Assembly[emp] = struct{}{}
		}
	}
	return idx
}

// At returns the role set for one section/day, empty when none exists.
func (idx AssignmentIndex) At(section, day string) RoleSet {
	if byDay, ok := idx[section]; ok {
		if rs, ok := byDay[day]; ok {
			return rs
		}
	}
	return RoleSet{
		Production: make(map[string]struct{}),
		Assembly:   make(map[string]struct{}),
	}
}

// Count is the number of assigned employees across both roles.
func (rs RoleSet) Count() int {
	return len(rs.Production) + len(rs.Assembly)
}
