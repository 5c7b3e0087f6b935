// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"strconv"

	board_model "code.dealdesk.io/dealdesk/models/board"
	"code.dealdesk.io/dealdesk/modules/json"
	"code.dealdesk.io/dealdesk/modules/util"
	board_service "code.dealdesk.io/dealdesk/services/board"

	"github.com/go-chi/chi/v5"
)

type handlers struct {
	engine *board_service.Engine
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewInvalidArgumentErrorf("invalid %s", name)
	}
	return id, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return util.NewInvalidArgumentErrorf("invalid request body: %v", err)
	}
	return nil
}

func (h *handlers) getBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := h.engine.LoadBoard(r.Context(), boardID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) requestMove(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req board_service.MoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.BoardID = boardID

	outcome, err := h.engine.RequestMove(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	switch {
	case outcome.Denied != nil:
		writeJSON(w, http.StatusForbidden, outcome)
	case outcome.Pending != nil:
		writeJSON(w, http.StatusAccepted, outcome)
	default:
		writeJSON(w, http.StatusOK, outcome)
	}
}

type createProposalRequest struct {
	Name string `json:"name"`
}

func (h *handlers) createProposal(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req createProposalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.engine.CreateProposal(r.Context(), boardID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type decisionRequest struct {
	ActorRole string `json:"actor_role"`
}

func (h *handlers) approve(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.engine.Approve(r.Context(), chi.URLParam(r, "token"), req.ActorRole)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) reject(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.engine.Reject(chi.URLParam(r, "token"), req.ActorRole); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Cancel(chi.URLParam(r, "token")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type justificationRequest struct {
	Justification string `json:"justification"`
}

func (h *handlers) draftJustification(w http.ResponseWriter, r *http.Request) {
	var req justificationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.engine.DraftJustification(chi.URLParam(r, "token"), req.Justification); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) reveal(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		writeError(w, err)
		return
	}
	columnID, err := pathID(r, "columnID")
	if err != nil {
		writeError(w, err)
		return
	}
	all := r.URL.Query().Get("all") == "true"

	view, err := h.engine.Reveal(r.Context(), boardID, columnID, all)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) addColumn(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		writeError(w, err)
		return
	}
	var column board_model.Column
	if err := decodeBody(r, &column); err != nil {
		writeError(w, err)
		return
	}
	column.ID = 0
	column.BoardID = boardID

	if err := h.engine.AddColumn(r.Context(), &column); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &column)
}

func (h *handlers) editColumn(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		writeError(w, err)
		return
	}
	columnID, err := pathID(r, "columnID")
	if err != nil {
		writeError(w, err)
		return
	}
	var column board_model.Column
	if err := decodeBody(r, &column); err != nil {
		writeError(w, err)
		return
	}
	column.ID = columnID
	column.BoardID = boardID

	if err := h.engine.EditColumn(r.Context(), &column); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &column)
}

func (h *handlers) removeColumn(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		writeError(w, err)
		return
	}
	columnID, err := pathID(r, "columnID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.engine.RemoveColumn(r.Context(), boardID, columnID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	Columns map[int64]int64 `json:"columns"`
}

func (h *handlers) reorderColumns(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	b, err := board_model.GetBoardByID(r.Context(), boardID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.engine.ReorderColumns(r.Context(), b, req.Columns); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) completeChecklistItem(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardID")
	if err != nil {
		writeError(w, err)
		return
	}
	proposalID, err := pathID(r, "proposalID")
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.engine.CompleteChecklistItem(r.Context(), boardID, proposalID, chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
