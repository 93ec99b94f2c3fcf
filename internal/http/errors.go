package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"xpoll/internal/domain/poll"
	"xpoll/internal/domain/response"
	"xpoll/internal/domain/user"
	"xpoll/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid credentials", err)
	case errors.Is(err, user.ErrNotFound):
		return apperr.NotFound("user_not_found", "user not found", err)
	case errors.Is(err, user.ErrUsernameTaken):
		return apperr.Conflict("username_taken", "username already taken", err)
	case errors.Is(err, user.ErrMissingFields):
		return apperr.BadRequest("invalid_input", "username and credential required", err)
	case errors.Is(err, user.ErrCredentialTooLong):
		return apperr.BadRequest("invalid_input", "credential longer than 72 bytes", err)
	case errors.Is(err, poll.ErrNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, poll.ErrEmptyQuestion):
		return apperr.BadRequest("invalid_input", "question required", err)
	case errors.Is(err, poll.ErrNoChoices):
		return apperr.BadRequest("invalid_input", "poll must have at least one choice", err)
	case errors.Is(err, poll.ErrOwnerNotFound):
		return apperr.BadRequest("unknown_owner", "poll owner not found", err)
	case errors.Is(err, response.ErrAlreadyResponded):
		return apperr.Conflict("already_responded", "user already responded to this poll", err)
	case errors.Is(err, response.ErrPollClosed):
		return apperr.BadRequest("poll_closed", "poll is closed", err)
	case errors.Is(err, response.ErrChoiceNotInPoll):
		return apperr.BadRequest("invalid_choice", "choice does not belong to poll", err)
	case errors.Is(err, response.ErrUserNotFound):
		return apperr.BadRequest("unknown_user", "user not found", err)
	case errors.Is(err, response.ErrPollNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Unavailable("store_timeout", "store did not answer in time", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
