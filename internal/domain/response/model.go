package response

import (
	"context"
	"time"
)

type Response struct {
	PollID    int64     `json:"poll_id"`
	ChoiceID  int64     `json:"choice_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	// Create records the response. The poll-open check, the
	// choice-membership check and the one-response-per-user check all
	// happen inside a single transaction in the store.
	Create(ctx context.Context, r *Response) error
}
