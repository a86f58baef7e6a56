// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/JJansen36/plan/schema"
	"github.com/JJansen36/plan/testutil"
)

func TestExport(t *testing.T) {
	fs := testutil.NewFakeStore()
	monday, _ := seedSchedule(fs)
	h := NewExportHandler(newTestController(fs))

	w := httptest.NewRecorder()
	h.Export(w, testutil.MakeRequest(http.MethodGet, "/planning/export", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "planning-"+monday+".xlsx") {
		t.Errorf("content disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	// Day header row starts at B3 with the range's first day.
	got, err := f.GetCellValue("Planning", "B3")
	if err != nil {
		t.Fatal(err)
	}
	if got != monday {
		t.Errorf("B3 = %q, want %q", got, monday)
	}

	// First grid row is the project header, title in column A.
	got, err = f.GetCellValue("Planning", "A4")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2024-001 - Kastenwand" {
		t.Errorf("A4 = %q, want the project title", got)
	}

	// The section row carries the work label under Tuesday (column C).
	got, err = f.GetCellValue("Planning", "C5")
	if err != nil {
		t.Fatal(err)
	}
	if got != "production" {
		t.Errorf("C5 = %q, want production", got)
	}
}

func TestExportRenderFailure(t *testing.T) {
	fs := testutil.NewFakeStore()
	seedSchedule(fs)
	fs.FailSelect(schema.TableProjects, errors.New("down"))
	h := NewExportHandler(newTestController(fs))

	w := httptest.NewRecorder()
	h.Export(w, testutil.MakeRequest(http.MethodGet, "/planning/export", nil, nil))

	testutil.AssertStatus(t, w, http.StatusBadGateway)
}
