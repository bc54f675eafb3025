package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/repository/postgres"
	"github.com/flintdate/flint-backend/internal/service"
	"github.com/flintdate/flint-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer captures sent mail for assertions.
type recordingMailer struct {
	mu   sync.Mutex
	sent []struct{ To, Subject, Body string }
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, struct{ To, Subject, Body string }{to, subject, body})
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	mailer := &recordingMailer{}
	authService := service.NewAuthService(repos.User, repos.Session, mailer, cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.RegisterInput
		setup   func()
		wantErr error
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Email: "new@example.com",
				Name:  "New User",
			},
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Email: "existing@example.com",
				Name:  "Another User",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@example.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}
			mailsBefore := mailer.count()

			user, rawPassword, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.Equal(t, tt.input.Name, user.Name)
			assert.True(t, user.FirstLogin)
			assert.NotEmpty(t, rawPassword)
			// The raw password is never stored.
			assert.NotEqual(t, rawPassword, user.PasswordHash)
			// The generated password was emailed.
			assert.Equal(t, mailsBefore+1, mailer.count())
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, &recordingMailer{}, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)
	firstLoginUser, firstLoginPassword := testutil.NewUserBuilder().
		WithEmail("fresh@example.com").
		WithFirstLogin().
		Build(t, testDB.DB)
	_, lockedPassword := testutil.NewUserBuilder().
		WithEmail("locked@example.com").
		WithLocked().
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				Email:    user.Email,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				Email:    user.Email,
				Password: "wrongpassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "non-existent user",
			input: service.LoginInput{
				Email:    "nobody@example.com",
				Password: "anypassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "first login requires password change",
			input: service.LoginInput{
				Email:    firstLoginUser.Email,
				Password: firstLoginPassword,
			},
			wantErr: service.ErrChangePasswordRequired,
		},
		{
			name: "locked account",
			input: service.LoginInput{
				Email:    "locked@example.com",
				Password: lockedPassword,
			},
			wantErr: domain.ErrUserLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, &recordingMailer{}, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("changer@example.com").
		WithFirstLogin().
		Build(t, testDB.DB)

	// Wrong old password is rejected.
	err := authService.ChangePassword(ctx, service.ChangePasswordInput{
		Email:       user.Email,
		OldPassword: "not-the-password",
		NewPassword: "brandnewpassword",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	// Correct old password changes it and clears first-login.
	err = authService.ChangePassword(ctx, service.ChangePasswordInput{
		Email:       user.Email,
		OldPassword: rawPassword,
		NewPassword: "brandnewpassword",
	})
	require.NoError(t, err)

	result, err := authService.Login(ctx, service.LoginInput{
		Email:    user.Email,
		Password: "brandnewpassword",
	})
	require.NoError(t, err)
	assert.False(t, result.User.FirstLogin)

	// Old password no longer works.
	_, err = authService.Login(ctx, service.LoginInput{
		Email:    user.Email,
		Password: rawPassword,
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	mailer := &recordingMailer{}
	authService := service.NewAuthService(repos.User, repos.Session, mailer, cfg)
	ctx := context.Background()

	user, oldPassword := testutil.NewUserBuilder().
		WithEmail("forgetful@example.com").
		Build(t, testDB.DB)

	err := authService.ForgotPassword(ctx, "unknown@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, authService.ForgotPassword(ctx, user.Email))
	assert.Equal(t, 1, mailer.count())

	// Old password is invalidated by the reset.
	_, err = authService.Login(ctx, service.LoginInput{
		Email:    user.Email,
		Password: oldPassword,
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, &recordingMailer{}, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("token@example.com").
		Build(t, testDB.DB)

	result, err := authService.Login(ctx, service.LoginInput{
		Email:    user.Email,
		Password: rawPassword,
	})
	require.NoError(t, err)

	claims, err := authService.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), (*claims)["sub"])

	_, err = authService.ValidateToken("not.a.token")
	assert.Error(t, err)
}
