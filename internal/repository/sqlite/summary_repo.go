package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"xpoll/internal/domain/summary"
)

type SummaryRepo struct {
	db *sql.DB
}

var _ summary.Repository = (*SummaryRepo)(nil)

func NewSummaryRepo(db *sql.DB) *SummaryRepo {
	return &SummaryRepo{db: db}
}

func (r *SummaryRepo) ByPoll(ctx context.Context, pollID int64) ([]summary.PollSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT p.question, c.choice_text, COUNT(resp.user_id)
        FROM polls p
        JOIN choices c ON c.poll_id = p.id
        LEFT JOIN responses resp ON resp.choice_id = c.id
        WHERE p.id = ?
        GROUP BY p.question, c.id, c.choice_text
        ORDER BY c.id
    `, pollID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select summaries: %w", err)
	}
	defer rows.Close()

	summaries := []summary.PollSummary{}
	for rows.Next() {
		var s summary.PollSummary
		if err := rows.Scan(&s.Question, &s.ChoiceText, &s.ResponseCount); err != nil {
			return nil, fmt.Errorf("sqlite: scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate summaries: %w", err)
	}

	return summaries, nil
}
