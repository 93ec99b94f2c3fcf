package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"xpoll/internal/domain/poll"
)

type PollRepo struct {
	db *sql.DB
}

var _ poll.Repository = (*PollRepo)(nil)

func NewPollRepo(db *sql.DB) *PollRepo {
	return &PollRepo{db: db}
}

func (r *PollRepo) Create(ctx context.Context, p *poll.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin create poll: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
        INSERT INTO polls (owner_id, question)
        VALUES ($1, $2)
        RETURNING id, is_closed, created_at
    `

	err = tx.QueryRowContext(ctx, queryPoll, p.OwnerID, p.Question).
		Scan(&p.ID, &p.IsClosed, &p.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return poll.ErrOwnerNotFound
		}
		return fmt.Errorf("postgres: insert poll: %w", err)
	}

	queryChoice := `
        INSERT INTO choices (poll_id, choice_text)
        VALUES ($1, $2)
        RETURNING id
    `

	for i := range p.Choices {
		p.Choices[i].PollID = p.ID
		if err := tx.QueryRowContext(ctx, queryChoice, p.ID, p.Choices[i].Text).
			Scan(&p.Choices[i].ID); err != nil {
			return fmt.Errorf("postgres: insert choice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit create poll: %w", err)
	}
	return nil
}

func (r *PollRepo) GetByID(ctx context.Context, id int64) (*poll.Poll, error) {
	p := &poll.Poll{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, owner_id, question, is_closed, created_at
        FROM polls WHERE id = $1
    `, id).Scan(&p.ID, &p.OwnerID, &p.Question, &p.IsClosed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, poll.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: select poll: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT id, poll_id, choice_text
        FROM choices WHERE poll_id = $1
        ORDER BY id
    `, id)
	if err != nil {
		return nil, fmt.Errorf("postgres: select choices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c poll.Choice
		if err := rows.Scan(&c.ID, &c.PollID, &c.Text); err != nil {
			return nil, fmt.Errorf("postgres: scan choice: %w", err)
		}
		p.Choices = append(p.Choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate choices: %w", err)
	}

	return p, nil
}

// Close flips is_closed without reporting how many rows matched, so a
// repeated or misaddressed close stays a no-op.
func (r *PollRepo) Close(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE polls SET is_closed = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres: close poll: %w", err)
	}
	return nil
}
