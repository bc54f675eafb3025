package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email      string
	name       string
	password   string
	firstLogin bool
	locked     bool
	role       domain.UserRole
	latitude   *float64
	longitude  *float64
}

// NewUserBuilder creates a new UserBuilder with default values. Users are
// created past the first-login state so they can log in directly.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("user_%s@test.local", uuid.New().String()[:8]),
		name:     "Test User",
		password: "testpassword123",
		role:     domain.RoleMember,
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithFirstLogin() *UserBuilder {
	b.firstLogin = true
	return b
}

func (b *UserBuilder) WithLocked() *UserBuilder {
	b.locked = true
	return b
}

func (b *UserBuilder) WithRole(role domain.UserRole) *UserBuilder {
	b.role = role
	return b
}

func (b *UserBuilder) WithLocation(lat, lon float64) *UserBuilder {
	b.latitude = &lat
	b.longitude = &lon
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		Name:         b.name,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		Locked:       b.locked,
		FirstLogin:   b.firstLogin,
		Latitude:     b.latitude,
		Longitude:    b.longitude,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// CreateMatch inserts a match row between two users, in normalized pair order.
func CreateMatch(t *testing.T, db *gorm.DB, userA, userB *domain.User) *domain.Match {
	t.Helper()

	a, b := domain.NormalizePair(userA.ID, userB.ID)
	match := &domain.Match{
		ID:        uuid.New(),
		UserAID:   a,
		UserBID:   b,
		CreatedAt: time.Now(),
	}
	if err := db.Create(match).Error; err != nil {
		t.Fatalf("failed to create match: %v", err)
	}
	return match
}

// Envelope mirrors the API's CommonResponse with the data left raw for the
// caller to decode.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginView matches the login response data
type LoginView struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates via the API and returns the access token
func Login(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	AssertJSONResponse(t, resp, &env)
	require.Equal(t, http.StatusOK, env.Status, "login failed: %s", env.Message)

	var view LoginView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.NotEmpty(t, view.AccessToken)
	return view.AccessToken
}

// DoJSON performs an authenticated JSON request against the test server.
// Token may be empty for public endpoints.
func DoJSON(t *testing.T, ts *TestServer, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.APIURL(path), body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}
