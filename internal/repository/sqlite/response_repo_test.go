package sqlite

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xpoll/internal/domain/response"
)

func TestResponseCreateChecks(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	open := seedPoll(t, db, alice, "Open?", "A", "B")
	other := seedPoll(t, db, alice, "Other?", "X")
	closed := seedPoll(t, db, alice, "Closed?", "C")
	require.NoError(t, NewPollRepo(db).Close(context.Background(), closed.ID))

	repo := NewResponseRepo(db)
	ctx := context.Background()

	r := &response.Response{PollID: open.ID, ChoiceID: open.Choices[0].ID, UserID: alice}
	require.NoError(t, repo.Create(ctx, r))
	assert.False(t, r.CreatedAt.IsZero())

	// Same user, other choice of the same poll.
	err := repo.Create(ctx, &response.Response{PollID: open.ID, ChoiceID: open.Choices[1].ID, UserID: alice})
	assert.ErrorIs(t, err, response.ErrAlreadyResponded)

	// A different user is free to respond.
	err = repo.Create(ctx, &response.Response{PollID: open.ID, ChoiceID: open.Choices[1].ID, UserID: bob})
	assert.NoError(t, err)

	err = repo.Create(ctx, &response.Response{PollID: 999, ChoiceID: open.Choices[0].ID, UserID: bob})
	assert.ErrorIs(t, err, response.ErrPollNotFound)

	err = repo.Create(ctx, &response.Response{PollID: closed.ID, ChoiceID: closed.Choices[0].ID, UserID: bob})
	assert.ErrorIs(t, err, response.ErrPollClosed)

	err = repo.Create(ctx, &response.Response{PollID: open.ID, ChoiceID: other.Choices[0].ID, UserID: bob})
	assert.ErrorIs(t, err, response.ErrChoiceNotInPoll)

	err = repo.Create(ctx, &response.Response{PollID: other.ID, ChoiceID: other.Choices[0].ID, UserID: 999})
	assert.ErrorIs(t, err, response.ErrUserNotFound)
}

func TestResponseConcurrentDuplicates(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	p := seedPoll(t, db, alice, "Race?", "A")
	repo := NewResponseRepo(db)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(context.Background(), &response.Response{
				PollID: p.ID, ChoiceID: p.Choices[0].ID, UserID: alice,
			})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, response.ErrAlreadyResponded):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one response must win")
	assert.Equal(t, workers-1, dup)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestResponseConcurrentDistinctUsers(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	p := seedPoll(t, db, owner, "Crowd?", "A", "B")

	const voters = 12
	userIDs := make([]int64, voters)
	for i := range userIDs {
		userIDs[i] = seedUser(t, db, "voter"+strconv.Itoa(i))
	}

	repo := NewResponseRepo(db)
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for _, id := range userIDs {
		userID := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(context.Background(), &response.Response{
				PollID: p.ID, ChoiceID: p.Choices[0].ID, UserID: userID,
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM responses WHERE poll_id = ?`, p.ID).Scan(&n))
	assert.Equal(t, voters, n)
}

func TestResponseUniqueConstraintBackstop(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	p := seedPoll(t, db, alice, "Backstop?", "A", "B")

	insert := `INSERT INTO responses (poll_id, choice_id, user_id, created_at) VALUES (?, ?, ?, ?)`
	_, err := db.Exec(insert, p.ID, p.Choices[0].ID, alice, time.Now().UTC())
	require.NoError(t, err)

	// Even bypassing the repository, the schema rejects a second
	// response by the same user, regardless of choice.
	_, err = db.Exec(insert, p.ID, p.Choices[1].ID, alice, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}
