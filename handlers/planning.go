// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JJansen36/plan/middleware"
	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/planning"
)

type PlanningHandler struct {
	ctrl *planning.Controller
}

func NewPlanningHandler(ctrl *planning.Controller) *PlanningHandler {
	return &PlanningHandler{ctrl: ctrl}
}

// Get handles GET /planning. The last rendered grid is returned when one
// exists; the first call renders the initial range.
func (h *PlanningHandler) Get(w http.ResponseWriter, r *http.Request) {
	if grid := h.ctrl.Grid(); grid != nil {
		middleware.JSONResponse(w, http.StatusOK, grid)
		return
	}
	h.render(w, r, h.ctrl.Refresh)
}

// Refresh handles POST /planning/refresh: re-fetch and re-render the
// current range.
func (h *PlanningHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.ctrl.Refresh)
}

// Next handles POST /planning/next: page one block forward.
func (h *PlanningHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.ctrl.Next)
}

// Prev handles POST /planning/prev: page one block back.
func (h *PlanningHandler) Prev(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.ctrl.Prev)
}

// Today handles POST /planning/today: jump to the current ISO week.
func (h *PlanningHandler) Today(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.ctrl.Today)
}

func (h *PlanningHandler) render(w http.ResponseWriter, r *http.Request, run func(context.Context) (*models.Grid, error)) {
	grid, err := run(r.Context())
	if err != nil {
		if errors.Is(err, planning.ErrSuperseded) {
			middleware.ErrorResponse(w, http.StatusConflict, "superseded by a newer navigation")
			return
		}
		slog.Error("render cycle failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "planning data could not be loaded")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, grid)
}
