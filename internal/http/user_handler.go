package api

import (
	"encoding/json"
	"net/http"

	"xpoll/internal/platform/apperr"
)

type createUserRequest struct {
	Username   string `json:"username"`
	Credential string `json:"credential"`
}

type verifyUserRequest struct {
	Username   string `json:"username"`
	Credential string `json:"credential"`
}

// @Summary     Create a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request  body      createUserRequest  true  "User payload"
// @Success     201      {object}  user.User
// @Failure     400      {object}  map[string]string  "invalid input"
// @Failure     409      {object}  map[string]string  "username taken"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/users [post]
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u, err := h.userSvc.Register(r.Context(), req.Username, req.Credential)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

// @Summary     Get a user
// @Tags        users
// @Produce     json
// @Param       id   path      int64  true  "User ID"
// @Success     200  {object}  user.User
// @Failure     400  {object}  map[string]string  "invalid id"
// @Failure     404  {object}  map[string]string  "not found"
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/users/{id} [get]
func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid user id", err))
		return
	}

	u, err := h.userSvc.GetByID(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// @Summary     Verify credentials
// @Tags        users
// @Accept      json
// @Param       request  body  verifyUserRequest  true  "Credentials"
// @Success     204
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     401      {object}  map[string]string  "invalid credentials"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/users/verify [post]
func (h *Handler) handleVerifyUser(w http.ResponseWriter, r *http.Request) {
	var req verifyUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if err := h.userSvc.Verify(r.Context(), req.Username, req.Credential); err != nil {
		errorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
