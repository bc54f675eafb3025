package service_test

import (
	"context"
	"testing"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/repository/postgres"
	"github.com/flintdate/flint-backend/internal/service"
	"github.com/flintdate/flint-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoveryService_Swipe(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	discovery := service.NewDiscoveryService(repos.User, repos.Swipe, repos.Match)
	ctx := context.Background()

	userA, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	userB, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("self swipe rejected", func(t *testing.T) {
		_, err := discovery.Swipe(ctx, userA.ID, userA.ID, true)
		assert.ErrorIs(t, err, domain.ErrSelfSwipe)
	})

	t.Run("unknown target rejected", func(t *testing.T) {
		_, err := discovery.Swipe(ctx, userA.ID, uuid.New(), true)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("one-sided like does not match", func(t *testing.T) {
		result, err := discovery.Swipe(ctx, userA.ID, userB.ID, true)
		require.NoError(t, err)
		assert.False(t, result.Matched)
		assert.Nil(t, result.Match)
	})

	t.Run("mutual like creates a match", func(t *testing.T) {
		result, err := discovery.Swipe(ctx, userB.ID, userA.ID, true)
		require.NoError(t, err)
		require.True(t, result.Matched)
		require.NotNil(t, result.Match)
		assert.True(t, result.Match.Involves(userA.ID))
		assert.True(t, result.Match.Involves(userB.ID))
	})

	t.Run("repeat mutual like reuses the existing match", func(t *testing.T) {
		result, err := discovery.Swipe(ctx, userA.ID, userB.ID, true)
		require.NoError(t, err)
		require.True(t, result.Matched)

		var count int64
		require.NoError(t, testDB.DB.Model(&domain.Match{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("pass after like does not match", func(t *testing.T) {
		userC, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		_, err := discovery.Swipe(ctx, userC.ID, userA.ID, true)
		require.NoError(t, err)

		result, err := discovery.Swipe(ctx, userA.ID, userC.ID, false)
		require.NoError(t, err)
		assert.False(t, result.Matched)
	})
}

func TestDiscoveryService_Nearby(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	discovery := service.NewDiscoveryService(repos.User, repos.Swipe, repos.Match)
	ctx := context.Background()

	// Paris as the caller's position; distances are approximate.
	caller, _ := testutil.NewUserBuilder().
		WithName("Caller").
		WithLocation(48.8566, 2.3522).
		Build(t, testDB.DB)
	closeBy, _ := testutil.NewUserBuilder().
		WithName("Versailles").
		WithLocation(48.8049, 2.1204). // ~18 km
		Build(t, testDB.DB)
	farAway, _ := testutil.NewUserBuilder().
		WithName("Lyon").
		WithLocation(45.7640, 4.8357). // ~390 km
		Build(t, testDB.DB)
	noLocation, _ := testutil.NewUserBuilder().
		WithName("Nowhere").
		Build(t, testDB.DB)

	t.Run("range filters by distance", func(t *testing.T) {
		nearby, err := discovery.Nearby(ctx, caller.ID, 50)
		require.NoError(t, err)
		require.Len(t, nearby, 1)
		assert.Equal(t, closeBy.ID, nearby[0].User.ID)
		assert.InDelta(t, 18, nearby[0].DistanceKm, 3)
	})

	t.Run("wider range includes distant users sorted by distance", func(t *testing.T) {
		nearby, err := discovery.Nearby(ctx, caller.ID, 500)
		require.NoError(t, err)
		require.Len(t, nearby, 2)
		assert.Equal(t, closeBy.ID, nearby[0].User.ID)
		assert.Equal(t, farAway.ID, nearby[1].User.ID)
	})

	t.Run("already swiped targets are excluded", func(t *testing.T) {
		_, err := discovery.Swipe(ctx, caller.ID, closeBy.ID, false)
		require.NoError(t, err)

		nearby, err := discovery.Nearby(ctx, caller.ID, 50)
		require.NoError(t, err)
		assert.Empty(t, nearby)
	})

	t.Run("caller without location", func(t *testing.T) {
		_, err := discovery.Nearby(ctx, noLocation.ID, 50)
		assert.ErrorIs(t, err, service.ErrNoLocation)
	})
}
