package api

import (
	"encoding/json"
	"net/http"

	"xpoll/internal/platform/apperr"
)

type createPollRequest struct {
	OwnerID  int64    `json:"owner_id"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

func (h *Handler) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.OwnerID <= 0 {
		errorResponse(w, apperr.BadRequest("invalid_input", "owner_id is required", nil))
		return
	}

	p, err := h.pollSvc.Create(r.Context(), req.OwnerID, req.Question, req.Choices)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	p, err := h.pollSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleClosePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	if err := h.pollSvc.Close(r.Context(), id); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
