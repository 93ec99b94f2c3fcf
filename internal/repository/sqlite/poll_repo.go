package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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
		return fmt.Errorf("sqlite: begin create poll: %w", err)
	}
	defer tx.Rollback()

	p.CreatedAt = time.Now().UTC()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO polls (owner_id, question, is_closed, created_at) VALUES (?, ?, 0, ?)`,
		p.OwnerID, p.Question, p.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return poll.ErrOwnerNotFound
		}
		return fmt.Errorf("sqlite: insert poll: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: poll id: %w", err)
	}

	for i := range p.Choices {
		p.Choices[i].PollID = p.ID
		res, err := tx.ExecContext(ctx,
			`INSERT INTO choices (poll_id, choice_text) VALUES (?, ?)`,
			p.ID, p.Choices[i].Text)
		if err != nil {
			return fmt.Errorf("sqlite: insert choice: %w", err)
		}
		if p.Choices[i].ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("sqlite: choice id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit create poll: %w", err)
	}
	return nil
}

func (r *PollRepo) GetByID(ctx context.Context, id int64) (*poll.Poll, error) {
	p := &poll.Poll{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, question, is_closed, created_at FROM polls WHERE id = ?`, id).
		Scan(&p.ID, &p.OwnerID, &p.Question, &p.IsClosed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, poll.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: select poll: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, poll_id, choice_text FROM choices WHERE poll_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select choices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c poll.Choice
		if err := rows.Scan(&c.ID, &c.PollID, &c.Text); err != nil {
			return nil, fmt.Errorf("sqlite: scan choice: %w", err)
		}
		p.Choices = append(p.Choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate choices: %w", err)
	}

	return p, nil
}

func (r *PollRepo) Close(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE polls SET is_closed = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: close poll: %w", err)
	}
	return nil
}
