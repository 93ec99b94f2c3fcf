package summary

import "context"

// PollSummary is one aggregation row: a choice of a poll together with
// how many responses it has collected.
type PollSummary struct {
	Question      string `json:"question"`
	ChoiceText    string `json:"choice_text"`
	ResponseCount int64  `json:"response_count"`
}

type Repository interface {
	// ByPoll returns one row per choice in choice-creation order,
	// counting zero for choices nobody picked. An absent poll yields an
	// empty slice, not an error.
	ByPoll(ctx context.Context, pollID int64) ([]PollSummary, error)
}
