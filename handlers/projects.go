// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/JJansen36/plan/middleware"
	"github.com/JJansen36/plan/models"
	"github.com/JJansen36/plan/planning"
	"github.com/JJansen36/plan/schema"
	"github.com/JJansen36/plan/store"
)

type ProjectHandler struct {
	store store.Store
}

func NewProjectHandler(st store.Store) *ProjectHandler {
	return &ProjectHandler{store: st}
}

const projectListCap = 500

// List handles GET /projects: project rows with customer names attached.
// A failed customer fetch degrades to projects without customer names,
// mirroring the two-step fallback of the original front end.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.Select(r.Context(), store.Query{
		Table: schema.TableProjects,
		Limit: projectListCap,
	})
	if err != nil {
		slog.Error("failed to fetch projects", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "projects could not be loaded")
		return
	}

	customerNames := h.customerNames(r)

	projID := planning.ResolveFrom(projects, schema.ProjectID)
	projNo := planning.ResolveFrom(projects, schema.ProjectNumber)
	projName := planning.ResolveFrom(projects, schema.ProjectName)
	projCust := planning.ResolveFrom(projects, schema.ProjectCustomerFK)

	out := []models.ProjectSummary{}
	for _, p := range projects {
		id := planning.StringField(p, projID)
		if id == "" {
			continue
		}
		out = append(out, models.ProjectSummary{
			ID:       id,
			Number:   planning.StringField(p, projNo),
			Name:     planning.StringField(p, projName),
			Customer: customerNames[planning.StringField(p, projCust)],
		})
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}

func (h *ProjectHandler) customerNames(r *http.Request) map[string]string {
	customers, err := h.store.Select(r.Context(), store.Query{
		Table: schema.TableCustomers,
		Limit: projectListCap,
	})
	if err != nil {
		slog.Warn("customer fetch failed, listing projects without customer names", "error", err)
		return nil
	}

	custID := planning.ResolveFrom(customers, schema.CustomerID)
	custName := planning.ResolveFrom(customers, schema.CustomerName)

	names := make(map[string]string, len(customers))
	for _, c := range customers {
		if id := planning.StringField(c, custID); id != "" {
			names[id] = planning.StringField(c, custName)
		}
	}
	return names
}
