// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Normalized work-type labels. Free-form source text ("wvb", "montage",
// "prod") is folded into this closed set at indexing time.
const (
	WorkPreparation = "preparation"
	WorkProduction  = "production"
	WorkAssembly    = "assembly"
	WorkDelivery    = "delivery"
	WorkOther       = "other"
)

// Assignment roles. Only these two are tracked for planned hours.
const (
	RoleProduction = "production"
	RoleAssembly   = "assembly"
)

// Availability classification per day.
const (
	StatusOK   = "ok"
	StatusWarn = "warn"
	StatusBad  = "bad"
)

// Grid row kinds.
const (
	RowProject = "project"
	RowSection = "section"
)

// Request types

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SaveAssignmentsRequest is a full-replace working set for one section/day.
type SaveAssignmentsRequest struct {
	SectionID  string   `json:"section_id"`
	Day        string   `json:"day"`
	Production []string `json:"production"`
	Assembly   []string `json:"assembly"`
}

// Response types

type SignInResponse struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
}

type SessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Selection is the editable assignment set for one section/day, as handed
// to the edit dialog. The slices are copies; mutating them never touches
// the rendered grid.
type Selection struct {
	SectionID  string   `json:"section_id"`
	Day        string   `json:"day"`
	Production []string `json:"production"`
	Assembly   []string `json:"assembly"`
}

type SaveAssignmentsResponse struct {
	Saved     int       `json:"saved"`
	Selection Selection `json:"selection"`
}

// View model

// Day is one calendar day of the visible range.
type Day struct {
	Date    string `json:"date"` // canonical YYYY-MM-DD
	Week    int    `json:"week"` // ISO-8601 week number
	Weekend bool   `json:"weekend"`
}

// Span is a run of consecutive days sharing one label: month and week
// header groups, and compressed work-type runs, all use this shape.
type Span struct {
	Label  string `json:"label"`
	Length int    `json:"length"`
}

// Cell is one day in a project or section row.
type Cell struct {
	Day         string `json:"day"`
	Label       string `json:"label"`
	RunStart    bool   `json:"run_start"`
	RunLength   int    `json:"run_length,omitempty"` // set on run starts only
	Deadline    bool   `json:"deadline,omitempty"`
	Assignments int    `json:"assignments,omitempty"`
}

// GridRow is one horizontal band of the grid: a project header row or one
// of its section rows.
type GridRow struct {
	Kind      string `json:"kind"`
	ProjectID string `json:"project_id"`
	SectionID string `json:"section_id,omitempty"`
	Title     string `json:"title"`
	Cells     []Cell `json:"cells"`
}

// CapacityRow is one employee's per-day available hours across the range.
type CapacityRow struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Hours      []float64 `json:"hours"`
	Total      float64   `json:"total"`
}

// DaySummary is the bottom line for one day. Planned hours attribute each
// assigned employee's full daily capacity to the role, so production plus
// assembly can exceed capacity when one employee holds both roles on the
// same day; the status classification is what makes that visible.
type DaySummary struct {
	Day               string  `json:"day"`
	Capacity          float64 `json:"capacity"`
	PlannedProduction float64 `json:"planned_production"`
	PlannedAssembly   float64 `json:"planned_assembly"`
	Availability      float64 `json:"availability"`
	Status            string  `json:"status"`
}

// Grid is the complete render model for one visible range. It is rebuilt
// wholesale on every navigation; nothing patches it incrementally.
type Grid struct {
	Start       string        `json:"start"`
	Days        []Day         `json:"days"`
	MonthGroups []Span        `json:"month_groups"`
	WeekGroups  []Span        `json:"week_groups"`
	Rows        []GridRow     `json:"rows"`
	Capacity    []CapacityRow `json:"capacity"`
	Summary     []DaySummary  `json:"summary"`
}

// ProjectSummary is one row of the project list.
type ProjectSummary struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Name     string `json:"name"`
	Customer string `json:"customer,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
