// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/JJansen36/plan/middleware"
	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/planning"
)

type ExportHandler struct {
	ctrl *planning.Controller
}

func NewExportHandler(ctrl *planning.Controller) *ExportHandler {
	return &ExportHandler{ctrl: ctrl}
}

const exportSheet = "Planning"

// Export handles GET /planning/export: the current grid as an .xlsx
// workbook. Renders first when no grid has been built yet.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	grid := h.ctrl.Grid()
	if grid == nil {
		g, err := h.ctrl.Refresh(r.Context())
		if err != nil {
			slog.Error("export render failed", "error", err)
			middleware.ErrorResponse(w, http.StatusBadGateway, "planning data could not be loaded")
			return
		}
		grid = g
	}

	f, err := buildWorkbook(grid)
	if err != nil {
		slog.Error("export workbook failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=planning-%s.xlsx", grid.Start))
	if err := f.Write(w); err != nil {
		slog.Error("export write failed", "error", err)
	}
}

// buildWorkbook lays the grid out on one sheet: month and week header rows
// (merged across their groups), a day row, one row per project/section,
// then capacity and summary blocks. Labels appear at run starts only,
// matching the on-screen rendering.
func buildWorkbook(grid *models.Grid) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Day columns start at B; column A holds row titles.
	const firstCol = 2

	setCell := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(exportSheet, cell, v)
	}
	mergeSpan := func(row, startCol, length int, label string) error {
		if err := setCell(startCol, row, label); err != nil {
			return err
		}
		if length <= 1 {
			return nil
		}
		from, _ := excelize.CoordinatesToCellName(startCol, row)
		to, _ := excelize.CoordinatesToCellName(startCol+length-1, row)
		return f.MergeCell(exportSheet, from, to)
	}

	col := firstCol
	for _, g := range grid.MonthGroups {
		if err := mergeSpan(1, col, g.Length, g.Label); err != nil {
			return nil, err
		}
		col += g.Length
	}
	col = firstCol
	for _, g := range grid.WeekGroups {
		if err := mergeSpan(2, col, g.Length, g.Label); err != nil {
			return nil, err
		}
		col += g.Length
	}
	for i, d := range grid.Days {
		if err := setCell(firstCol+i, 3, d.Date); err != nil {
			return nil, err
		}
	}

	row := 4
	for _, gr := range grid.Rows {
		if err := setCell(1, row, gr.Title); err != nil {
			return nil, err
		}
		for i, cell := range gr.Cells {
			if cell.RunStart && cell.Label != "" {
				if err := setCell(firstCol+i, row, cell.Label); err != nil {
					return nil, err
				}
			}
		}
		row++
	}

	row++
	for _, cr := range grid.Capacity {
		if err := setCell(1, row, cr.Name); err != nil {
			return nil, err
		}
		for i, h := range cr.Hours {
			if h == 0 {
				continue
			}
			if err := setCell(firstCol+i, row, h); err != nil {
				return nil, err
			}
		}
		row++
	}

	row++
	summaryLines := []struct {
		title string
		value func(s models.DaySummary) any
	}{
		{"Capacity", func(s models.DaySummary) any { return s.Capacity }},
		{"Planned production", func(s models.DaySummary) any { return s.PlannedProduction }},
		{"Planned assembly", func(s models.DaySummary) any { return s.PlannedAssembly }},
		{"Availability", func(s models.DaySummary) any { return s.Availability }},
		{"Status", func(s models.DaySummary) any { return s.Status }},
	}
	for _, line := range summaryLines {
		if err := setCell(1, row, line.title); err != nil {
			return nil, err
		}
		for i, s := range grid.Summary {
			if err := setCell(firstCol+i, row, line.value(s)); err != nil {
				return nil, err
			}
		}
		row++
	}

	return f, nil
}
