package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"xpoll/internal/domain/response"
)

type ResponseRepo struct {
	db *sql.DB
}

var _ response.Repository = (*ResponseRepo)(nil)

func NewResponseRepo(db *sql.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// Create runs every check and the insert in one transaction. The poll
// row is locked FOR UPDATE, which serializes responses to the same poll
// against each other and against a concurrent close. The primary key on
// (poll_id, user_id) backstops the duplicate check.
func (r *ResponseRepo) Create(ctx context.Context, resp *response.Response) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin create response: %w", err)
	}
	defer tx.Rollback()

	var isClosed bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_closed FROM polls WHERE id = $1 FOR UPDATE`, resp.PollID).
		Scan(&isClosed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response.ErrPollNotFound
		}
		return fmt.Errorf("postgres: lock poll %d: %w", resp.PollID, err)
	}
	if isClosed {
		return response.ErrPollClosed
	}

	var choicePollID int64
	err = tx.QueryRowContext(ctx,
		`SELECT poll_id FROM choices WHERE id = $1`, resp.ChoiceID).
		Scan(&choicePollID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("postgres: select choice %d: %w", resp.ChoiceID, err)
	}
	if errors.Is(err, sql.ErrNoRows) || choicePollID != resp.PollID {
		return response.ErrChoiceNotInPoll
	}

	var already bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM responses WHERE poll_id = $1 AND user_id = $2)`,
		resp.PollID, resp.UserID).Scan(&already)
	if err != nil {
		return fmt.Errorf("postgres: check prior response: %w", err)
	}
	if already {
		return response.ErrAlreadyResponded
	}

	err = tx.QueryRowContext(ctx, `
        INSERT INTO responses (poll_id, choice_id, user_id)
        VALUES ($1, $2, $3)
        RETURNING created_at
    `, resp.PollID, resp.ChoiceID, resp.UserID).Scan(&resp.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return response.ErrAlreadyResponded
		}
		if isForeignKeyViolation(err) {
			return response.ErrUserNotFound
		}
		return fmt.Errorf("postgres: insert response: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit create response: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
