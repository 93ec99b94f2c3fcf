package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"xpoll/internal/domain/poll"
	"xpoll/internal/domain/user"
	"xpoll/internal/platform/database"
)

// newTestDB opens an in-memory database capped at one connection: every
// pooled connection would otherwise see its own empty :memory: store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.Config{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.EnsureSchema(context.Background(), db, "sqlite"))
	return db
}

func seedUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	u := &user.User{Username: username, CredentialHash: "irrelevant"}
	require.NoError(t, NewUserRepo(db).Create(context.Background(), u))
	return u.ID
}

func seedPoll(t *testing.T, db *sql.DB, ownerID int64, question string, texts ...string) *poll.Poll {
	t.Helper()

	p := &poll.Poll{OwnerID: ownerID, Question: question}
	for _, text := range texts {
		p.Choices = append(p.Choices, poll.Choice{Text: text})
	}
	require.NoError(t, NewPollRepo(db).Create(context.Background(), p))
	return p
}
