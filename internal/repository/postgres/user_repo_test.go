package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/repository/postgres"
	"github.com/flintdate/flint-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name: "successful creation",
			user: &domain.User{
				ID:           uuid.New(),
				Email:        "create@example.com",
				Name:         "Create User",
				PasswordHash: "hashedpassword",
				Role:         domain.RoleMember,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				ID:           uuid.New(),
				Email:        "create@example.com", // Same as above
				Name:         "Other User",
				PasswordHash: "hashedpassword2",
				Role:         domain.RoleMember,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("lookup@example.com").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:  "existing user",
			email: user.Email,
		},
		{
			name:    "non-existent user",
			email:   "missing@example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByEmail(ctx, tt.email)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, user.Email, got.Email)
		})
	}
}

func TestUserRepository_Search(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewUserBuilder().
		WithEmail("alice@example.com").
		WithName("Alice Anderson").
		Build(t, testDB.DB)
	testutil.NewUserBuilder().
		WithEmail("bob@example.com").
		WithName("Bob Brown").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		keyword string
		want    int
	}{
		{name: "match by name", keyword: "anderson", want: 1},
		{name: "match by email", keyword: "bob@", want: 1},
		{name: "shared keyword", keyword: "example.com", want: 2},
		{name: "no match", keyword: "zzz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.keyword)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestUserRepository_ListWithLocation(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	located, _ := testutil.NewUserBuilder().WithLocation(40.0, -74.0).Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().WithLocation(41.0, -73.0).Build(t, testDB.DB)
	testutil.NewUserBuilder().Build(t, testDB.DB) // no location
	testutil.NewUserBuilder().WithLocation(42.0, -72.0).WithLocked().Build(t, testDB.DB)

	got, err := repo.ListWithLocation(ctx, located.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, other.ID, got[0].ID)
}
