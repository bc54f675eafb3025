package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/repository/postgres"
	"github.com/flintdate/flint-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_ListByMatch(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMessageRepository(testDB.DB)
	ctx := context.Background()

	userA, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	userB, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	match := testutil.CreateMatch(t, testDB.DB, userA, userB)
	otherMatch := testutil.CreateMatch(t, testDB.DB, userA, func() *domain.User {
		u, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		return u
	}())

	base := time.Now().Add(-time.Minute)
	contents := []string{"one", "two", "three"}
	for i, content := range contents {
		require.NoError(t, repo.Create(ctx, &domain.Message{
			MatchID:    match.ID,
			SenderID:   userA.ID,
			ReceiverID: userB.ID,
			Content:    content,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}))
	}
	// A message on another match must not leak into the listing.
	require.NoError(t, repo.Create(ctx, &domain.Message{
		MatchID:    otherMatch.ID,
		SenderID:   userA.ID,
		ReceiverID: otherMatch.UserBID,
		Content:    "elsewhere",
		CreatedAt:  base,
	}))

	t.Run("ordered by creation time ascending", func(t *testing.T) {
		messages, err := repo.ListByMatch(ctx, match.ID, 0, 0)
		require.NoError(t, err)
		require.Len(t, messages, len(contents))
		for i, m := range messages {
			assert.Equal(t, contents[i], m.Content)
		}
	})

	t.Run("limit and offset window the thread", func(t *testing.T) {
		messages, err := repo.ListByMatch(ctx, match.ID, 1, 1)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "two", messages[0].Content)
	})

	t.Run("ids are assigned monotonically", func(t *testing.T) {
		messages, err := repo.ListByMatch(ctx, match.ID, 0, 0)
		require.NoError(t, err)
		for i := 1; i < len(messages); i++ {
			assert.Greater(t, messages[i].ID, messages[i-1].ID)
		}
	})
}
