package poll

import (
	"context"
	"time"
)

type Poll struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Question  string    `json:"question"`
	IsClosed  bool      `json:"is_closed"`
	Choices   []Choice  `json:"choices"`
	CreatedAt time.Time `json:"created_at"`
}

type Choice struct {
	ID     int64  `json:"id"`
	PollID int64  `json:"poll_id"`
	Text   string `json:"text"`
}

type Repository interface {
	// Create persists the poll and its choices atomically, filling in
	// the generated identifiers. Choice order is preserved.
	Create(ctx context.Context, p *Poll) error
	GetByID(ctx context.Context, id int64) (*Poll, error)
	Close(ctx context.Context, id int64) error
}
