// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

// Table names in the planning database. The source schema is Dutch.
const (
	TableCustomers   = "klanten"
	TableProjects    = "projecten"
	TableSections    = "secties"
	TableEmployees   = "werknemers"
	TableCapacity    = "capacity_entries"
	TableWork        = "section_work"
	TableAssignments = "project_plan"
)

// Candidate column names per logical field. The first candidate present on
// a sample record wins; exports here are ordered most-likely-first. When no
// candidate matches, downstream code falls back to the first name verbatim
// and degrades to empty groupings rather than failing.
var (
	ProjectID         = []string{"project_id", "id"}
	ProjectNumber     = []string{"offerno", "projectno"}
	ProjectName       = []string{"projectname", "naam"}
	ProjectCustomerFK = []string{"customer_id", "klant_id"}
	ProjectCompletion = []string{"completiondate", "opleverdatum"}

	SectionID        = []string{"section_id", "id"}
	SectionProjectFK = []string{"project_id", "projectid"}
	SectionName      = []string{"paragraaf", "beschrijving", "name"}

	EmployeeID   = []string{"werknemer_id", "employee_id", "id"}
	EmployeeName = []string{"naam", "name", "fullname"}

	WorkSectionFK = []string{"section_id", "sectie_id"}
	WorkDay       = []string{"datum", "date", "day"}
	WorkType      = []string{"type", "soort"}
	WorkHours     = []string{"uren", "hours"}

	CapacityEmployeeFK = []string{"werknemer_id", "employee_id"}
	CapacityDay        = []string{"datum", "date", "day"}
	CapacityType       = []string{"type", "soort"}
	CapacityHours      = []string{"uren", "hours"}

	AssignmentID         = []string{"plan_id", "id"}
	AssignmentSectionFK  = []string{"section_id", "sectie_id"}
	AssignmentDay        = []string{"datum", "date", "day"}
	AssignmentEmployeeFK = []string{"werknemer_id", "employee_id"}
	AssignmentRole       = []string{"role", "rol"}

	CustomerID   = []string{"customer_id", "id"}
	CustomerName = []string{"name_kl", "naam"}
)
