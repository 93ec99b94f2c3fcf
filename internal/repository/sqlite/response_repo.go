package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"xpoll/internal/domain/response"
)

type ResponseRepo struct {
	db *sql.DB
}

var _ response.Repository = (*ResponseRepo)(nil)

func NewResponseRepo(db *sql.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// Create runs the open-poll check, the choice-membership check, the
// duplicate check and the insert in one transaction. SQLite allows a
// single writer at a time, and the primary key on (poll_id, user_id)
// backstops the duplicate check.
func (r *ResponseRepo) Create(ctx context.Context, resp *response.Response) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin create response: %w", err)
	}
	defer tx.Rollback()

	var isClosed bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_closed FROM polls WHERE id = ?`, resp.PollID).Scan(&isClosed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response.ErrPollNotFound
		}
		return fmt.Errorf("sqlite: select poll: %w", err)
	}
	if isClosed {
		return response.ErrPollClosed
	}

	var choicePollID int64
	err = tx.QueryRowContext(ctx,
		`SELECT poll_id FROM choices WHERE id = ?`, resp.ChoiceID).Scan(&choicePollID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: select choice: %w", err)
	}
	if errors.Is(err, sql.ErrNoRows) || choicePollID != resp.PollID {
		return response.ErrChoiceNotInPoll
	}

	var already bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM responses WHERE poll_id = ? AND user_id = ?)`,
		resp.PollID, resp.UserID).Scan(&already)
	if err != nil {
		return fmt.Errorf("sqlite: select response: %w", err)
	}
	if already {
		return response.ErrAlreadyResponded
	}

	resp.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO responses (poll_id, choice_id, user_id, created_at) VALUES (?, ?, ?, ?)`,
		resp.PollID, resp.ChoiceID, resp.UserID, resp.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return response.ErrAlreadyResponded
		}
		if isForeignKeyViolation(err) {
			return response.ErrUserNotFound
		}
		return fmt.Errorf("sqlite: insert response: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit create response: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}
