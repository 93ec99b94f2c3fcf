package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xpoll/internal/domain/response"
	"xpoll/internal/domain/summary"
)

func TestSummaryCountsIncludeZeroChoices(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	u1 := seedUser(t, db, "u1")
	u2 := seedUser(t, db, "u2")
	u3 := seedUser(t, db, "u3")
	p := seedPoll(t, db, owner, "Favorite letter?", "A", "B", "C")

	responses := NewResponseRepo(db)
	ctx := context.Background()
	require.NoError(t, responses.Create(ctx, &response.Response{PollID: p.ID, ChoiceID: p.Choices[0].ID, UserID: u1}))
	require.NoError(t, responses.Create(ctx, &response.Response{PollID: p.ID, ChoiceID: p.Choices[0].ID, UserID: u2}))
	require.NoError(t, responses.Create(ctx, &response.Response{PollID: p.ID, ChoiceID: p.Choices[2].ID, UserID: u3}))

	got, err := NewSummaryRepo(db).ByPoll(ctx, p.ID)
	require.NoError(t, err)

	want := []summary.PollSummary{
		{Question: "Favorite letter?", ChoiceText: "A", ResponseCount: 2},
		{Question: "Favorite letter?", ChoiceText: "B", ResponseCount: 0},
		{Question: "Favorite letter?", ChoiceText: "C", ResponseCount: 1},
	}
	assert.Equal(t, want, got)
}

func TestSummaryDoesNotMixPolls(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	voter := seedUser(t, db, "voter")
	first := seedPoll(t, db, owner, "First?", "A")
	second := seedPoll(t, db, owner, "Second?", "B")

	responses := NewResponseRepo(db)
	ctx := context.Background()
	require.NoError(t, responses.Create(ctx, &response.Response{PollID: first.ID, ChoiceID: first.Choices[0].ID, UserID: voter}))

	got, err := NewSummaryRepo(db).ByPoll(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(0), got[0].ResponseCount)
	assert.Equal(t, "Second?", got[0].Question)
}

func TestSummaryAbsentPoll(t *testing.T) {
	db := newTestDB(t)

	got, err := NewSummaryRepo(db).ByPoll(context.Background(), 999)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSummaryPollWithoutChoices(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")

	res, err := db.Exec(`INSERT INTO polls (owner_id, question, is_closed, created_at) VALUES (?, 'Bare?', 0, ?)`,
		owner, time.Now().UTC())
	require.NoError(t, err)
	pollID, err := res.LastInsertId()
	require.NoError(t, err)

	got, err := NewSummaryRepo(db).ByPoll(context.Background(), pollID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
