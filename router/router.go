// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/JJansen36/plan/auth"
	"github.com/JJansen36/plan/handlers"
	"github.com/JJansen36/plan/middleware"
	"github.com/JJansen36/plan/planning"
	"github.com/JJansen36/plan/store"
)

func NewRouter(st store.Store, authClient *auth.Client, ctrl *planning.Controller) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	planningHandler := handlers.NewPlanningHandler(ctrl)
	assignmentHandler := handlers.NewAssignmentHandler(ctrl)
	exportHandler := handlers.NewExportHandler(ctrl)
	projectHandler := handlers.NewProjectHandler(st)
	sessionHandler := handlers.NewSessionHandler(authClient)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session (sign-in is the only unauthenticated endpoint besides /health)
	mux.HandleFunc("POST /session", middleware.WithLogging(sessionHandler.SignIn))
	mux.HandleFunc("GET /session", middleware.WithLogging(middleware.RequireSession(authClient, sessionHandler.Me)))
	mux.HandleFunc("DELETE /session", middleware.WithLogging(sessionHandler.SignOut))

	guard := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(authClient, h))
	}

	// Planning grid and navigation
	mux.HandleFunc("GET /planning", guard(planningHandler.Get))
	mux.HandleFunc("POST /planning/refresh", guard(planningHandler.Refresh))
	mux.HandleFunc("POST /planning/prev", guard(planningHandler.Prev))
	mux.HandleFunc("POST /planning/next", guard(planningHandler.Next))
	mux.HandleFunc("POST /planning/today", guard(planningHandler.Today))
	mux.HandleFunc("GET /planning/export", guard(exportHandler.Export))

	// Assignment editing
	mux.HandleFunc("GET /planning/assignments", guard(assignmentHandler.GetSelection))
	mux.HandleFunc("PUT /planning/assignments", guard(assignmentHandler.Save))

	// Project list
	mux.HandleFunc("GET /projects", guard(projectHandler.List))

	return mux
}
