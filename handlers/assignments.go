// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JJansen36/plan/middleware"
	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/planning"
)

type AssignmentHandler struct {
	ctrl *planning.Controller
}

func NewAssignmentHandler(ctrl *planning.Controller) *AssignmentHandler {
	return &AssignmentHandler{ctrl: ctrl}
}

// GetSelection handles GET /planning/assignments?section=&day=. It opens a
// read-only view of the current assignment set for the edit dialog.
func (h *AssignmentHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	day := r.URL.Query().Get("day")
	if section == "" || day == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "section and day are required")
		return
	}

	ed, err := h.ctrl.OpenEditor(r.Context(), section, day)
	if err != nil {
		slog.Error("failed to read assignments", "section", section, "day", day, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "assignments could not be loaded")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ed.Selection())
}

// Save handles PUT /planning/assignments: a full-replace commit of the
// working selection for one section/day. On a partial failure (the delete
// landed, the insert did not) the error says so explicitly so the user
// retries instead of assuming the old state survived.
func (h *AssignmentHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.SaveAssignmentsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.SectionID == "" || req.Day == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "section_id and day are required")
		return
	}

	ed, err := h.ctrl.OpenEditor(r.Context(), req.SectionID, req.Day)
	if err != nil {
		slog.Error("failed to read assignments", "section", req.SectionID, "day", req.Day, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "assignments could not be loaded")
		return
	}

	if err := ed.SetSelection(req.Production, req.Assembly); err != nil {
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	}

	if err := ed.Commit(r.Context()); err != nil {
		slog.Error("assignment commit failed", "section", req.SectionID, "day", req.Day, "error", err)
		if errors.Is(err, planning.ErrPartialCommit) {
			middleware.ErrorResponse(w, http.StatusBadGateway,
				"save failed after clearing existing assignments; retry to restore them")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadGateway, "assignments could not be saved")
		return
	}

	sel := ed.Selection()
	slog.Info("assignments saved",
		"section", req.SectionID,
		"day", req.Day,
		"production", len(sel.Production),
		"assembly", len(sel.Assembly),
	)

	middleware.JSONResponse(w, http.StatusOK, models.SaveAssignmentsResponse{
		Saved:     len(sel.Production) + len(sel.Assembly),
		Selection: sel,
	})
}
