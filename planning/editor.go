// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/schema"
	"github.com/JJansen36/plan/store"
)

// EditorState is the assignment editing lifecycle for one section/day.
type EditorState int

const (
	EditorClosed EditorState = iota
	EditorOpen
	EditorCommitting
)

var (
	ErrEditorClosed  = errors.New("no assignment edit in progress")
	ErrUnknownRole   = errors.New("unknown assignment role")
	ErrPartialCommit = errors.New("assignments cleared but not rewritten")
)

// AssignmentColumns are the resolved column names assignment writes use.
type AssignmentColumns struct {
	ID       string
	Section  string
	Day      string
	Employee string
	Role     string
}

// ResolveAssignmentColumns resolves write columns from fetched assignment
// rows, falling back to the schema's first candidates when the table is
// still empty.
func ResolveAssignmentColumns(rows []store.Record) AssignmentColumns {
	return AssignmentColumns{
		ID:       ResolveFrom(rows, schema.AssignmentID),
		Section:  ResolveFrom(rows, schema.AssignmentSectionFK),
		Day:      ResolveFrom(rows, schema.AssignmentDay),
		Employee: ResolveFrom(rows, schema.AssignmentEmployeeFK),
		Role:     ResolveFrom(rows, schema.AssignmentRole),
	}
}

// Editor mediates one assignment editing session. The working selection is
// a defensive copy of the index state at open time; nothing touches the
// store until Commit. A commit is a full replace: delete every row for the
// (section, day) pair, then insert the working set.
type Editor struct {
	store store.Store
	cols  AssignmentColumns

	state      EditorState
	section    string
	day        string
	production map[string]struct{}
	assembly   map[string]struct{}
}

func NewEditor(st store.Store, cols AssignmentColumns) *Editor {
	return &Editor{store: st, cols: cols}
}

// State reports the session lifecycle phase.
func (e *Editor) State() EditorState { return e.state }

// Open starts an editing session seeded from the current index state.
func (e *Editor) Open(section, day string, current RoleSet) {
	e.section = section
	e.day = day
	e.production = copySet(current.Production)
	e.assembly = copySet(current.Assembly)
	e.state = EditorOpen
}

// Toggle flips one employee's membership in a role's working set.
func (e *Editor) Toggle(role, employee string) error {
	if e.state != EditorOpen {
		return ErrEditorClosed
	}
	var set map[string]struct{}
	switch role {
	case models.RoleProduction:
		set = e.production
	case models.RoleAssembly:
		set = e.assembly
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if _, ok := set[employee]; ok {
		delete(set, employee)
	} else {
		set[employee] = struct{}{}
	}
	return nil
}

// SetSelection replaces the working set for both roles at once.
func (e *Editor) SetSelection(production, assembly []string) error {
	if e.state != EditorOpen {
		return ErrEditorClosed
	}
	e.production = setOf(production)
	e.assembly = setOf(assembly)
	return nil
}

// Selection copies the working set out for display.
func (e *Editor) Selection() models.Selection {
	return models.Selection{
		SectionID:  e.section,
		Day:        e.day,
		Production: sortedMembers(e.production),
		Assembly:   sortedMembers(e.assembly),
	}
}

// Cancel abandons the session without touching the store.
func (e *Editor) Cancel() {
	e.state = EditorClosed
	e.production = nil
	e.assembly = nil
}

// Commit replaces the stored assignments for the session's section/day with
// the working set. The two store calls are not atomic: when the delete
// lands but the insert fails, the pair is left empty and the error names
// it; the session stays open so a retry reuses the same selection.
func (e *Editor) Commit(ctx context.Context) error {
	if e.state != EditorOpen {
		return ErrEditorClosed
	}
	e.state = EditorCommitting

	// Build the insert batch before deleting anything.
	rows := e.insertRows()

	err := e.store.Delete(ctx, schema.TableAssignments, map[string]any{
		e.cols.Section: e.section,
		e.cols.Day:     e.day,
	})
	if err != nil {
		e.state = EditorOpen
		return fmt.Errorf("delete assignments for %s/%s: %w", e.section, e.day, err)
	}

	if len(rows) > 0 {
		if err := e.store.Insert(ctx, schema.TableAssignments, rows); err != nil {
			e.state = EditorOpen
			return fmt.Errorf("%w for %s/%s: %v", ErrPartialCommit, e.section, e.day, err)
		}
	}

	e.state = EditorClosed
	return nil
}

func (e *Editor) insertRows() []store.Record {
	var rows []store.Record
	appendRole := func(role string, set map[string]struct{}) {
		for _, emp := range sortedMembers(set) {
			rows = append(rows, store.Record{
				e.cols.ID:       uuid.NewString(),
				e.cols.Section:  e.section,
				e.cols.Day:      e.day,
				e.cols.Employee: emp,
				e.cols.Role:     role,
			})
		}
	}
	appendRole(models.RoleProduction, e.production)
	appendRole(models.RoleAssembly, e.assembly)
	return rows
}

func copySet(src map[string]struct{}) map[string]struct{} {
	dst := make(map[string]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}

func setOf(members []string) map[string]struct{} {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m != "" {
			set[m] = struct{}{}
		}
	}
	return set
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}
