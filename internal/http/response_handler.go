package api

import (
	"encoding/json"
	"net/http"

	"xpoll/internal/platform/apperr"
	"xpoll/internal/worker"
)

type createResponseRequest struct {
	ChoiceID int64 `json:"choice_id"`
	UserID   int64 `json:"user_id"`
}

// @Summary     Record a response
// @Tags        responses
// @Accept      json
// @Produce     json
// @Param       id       path      int64                  true  "Poll ID"
// @Param       request  body      createResponseRequest  true  "Response payload"
// @Success     201      {object}  response.Response
// @Failure     400      {object}  map[string]string  "invalid input, closed poll or foreign choice"
// @Failure     404      {object}  map[string]string  "poll not found"
// @Failure     409      {object}  map[string]string  "already responded"
// @Failure     429      {object}  map[string]string  "rate limited"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/polls/{id}/responses [post]
func (h *Handler) handleCreateResponse(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	var req createResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.ChoiceID <= 0 {
		errorResponse(w, apperr.BadRequest("invalid_input", "choice_id is required", nil))
		return
	}
	if req.UserID <= 0 {
		errorResponse(w, apperr.BadRequest("invalid_input", "user_id is required", nil))
		return
	}

	resp, err := h.responseSvc.Record(r.Context(), pollID, req.ChoiceID, req.UserID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	select {
	case h.responseCh <- worker.ResponseEvent{PollID: pollID, ChoiceID: req.ChoiceID}:
	default:
	}

	writeJSON(w, http.StatusCreated, resp)
}

// @Summary     Poll summaries
// @Tags        polls
// @Produce     json
// @Param       id   path      int64  true  "Poll ID"
// @Success     200  {array}   summary.PollSummary
// @Failure     400  {object}  map[string]string  "invalid poll id"
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/polls/{id}/summaries [get]
func (h *Handler) handleGetSummaries(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid poll id", err))
		return
	}

	summaries, err := h.summarySvc.ByPoll(r.Context(), pollID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}
