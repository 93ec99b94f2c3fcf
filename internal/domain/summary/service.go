package summary

import "context"

// Service derives tallies from stored responses on every read. Nothing
// is cached, so a summary can never drift from the responses table.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ByPoll(ctx context.Context, pollID int64) ([]PollSummary, error) {
	return s.repo.ByPoll(ctx, pollID)
}
