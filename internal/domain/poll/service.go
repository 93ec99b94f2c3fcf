package poll

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("poll not found")
	ErrEmptyQuestion = errors.New("question required")
	ErrNoChoices     = errors.New("poll must have at least one choice")
	ErrOwnerNotFound = errors.New("poll owner not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID int64, question string, choiceTexts []string) (*Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if len(choiceTexts) == 0 {
		return nil, ErrNoChoices
	}

	p := &Poll{
		OwnerID:  ownerID,
		Question: question,
		Choices:  make([]Choice, 0, len(choiceTexts)),
	}
	for _, text := range choiceTexts {
		p.Choices = append(p.Choices, Choice{Text: text})
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Poll, error) {
	return s.repo.GetByID(ctx, id)
}

// Close marks the poll closed. It is idempotent: closing an already
// closed or absent poll succeeds.
func (s *Service) Close(ctx context.Context, id int64) error {
	return s.repo.Close(ctx, id)
}
