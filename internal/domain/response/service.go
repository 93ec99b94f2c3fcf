package response

import (
	"context"
	"errors"
)

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrPollClosed       = errors.New("poll is closed")
	ErrChoiceNotInPoll  = errors.New("choice does not belong to poll")
	ErrAlreadyResponded = errors.New("user already responded to this poll")
	ErrUserNotFound     = errors.New("user not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, pollID, choiceID, userID int64) (*Response, error) {
	r := &Response{PollID: pollID, ChoiceID: choiceID, UserID: userID}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
