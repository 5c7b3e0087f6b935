// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package api provides the HTTP API of the workflow engine.
package api

import (
	"errors"
	"net/http"

	"code.dealdesk.io/dealdesk/modules/json"
	"code.dealdesk.io/dealdesk/modules/log"
	"code.dealdesk.io/dealdesk/modules/util"
	board_service "code.dealdesk.io/dealdesk/services/board"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes registers all API routes
func Routes(engine *board_service.Engine) http.Handler {
	h := &handlers{engine: engine}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/boards/{boardID}", func(r chi.Router) {
			r.Get("/", h.getBoard)
			r.Post("/moves", h.requestMove)
			r.Post("/proposals", h.createProposal)
			r.Post("/columns", h.addColumn)
			r.Put("/columns/{columnID}", h.editColumn)
			r.Delete("/columns/{columnID}", h.removeColumn)
			r.Post("/columns/reorder", h.reorderColumns)
			r.Post("/columns/{columnID}/reveal", h.reveal)
			r.Post("/proposals/{proposalID}/checklist/{itemID}", h.completeChecklistItem)
		})
		r.Route("/approvals/{token}", func(r chi.Router) {
			r.Post("/approve", h.approve)
			r.Post("/reject", h.reject)
			r.Post("/cancel", h.cancel)
			r.Post("/justification", h.draftJustification)
		})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// writeJSON serializes a response body, errors at this point can only be
// logged
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("write response: %v", err)
	}
}

type apiError struct {
	Message string `json:"message"`
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, util.ErrNotExist):
		status = http.StatusNotFound
	case errors.Is(err, util.ErrInvalidArgument):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, util.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, util.ErrAlreadyExist), board_service.IsErrMoveInFlight(err):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Error("internal error: %v", err)
	}
	writeJSON(w, status, apiError{Message: err.Error()})
}
