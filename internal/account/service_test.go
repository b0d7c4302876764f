// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/drecktrack/internal/account"
	"github.com/taibuivan/drecktrack/internal/platform/apperr"
)

// # Fakes

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*account.User
}

func (fake *fakeUsers) FindByID(_ context.Context, id string) (*account.User, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if user, ok := fake.users[id]; ok {
		return user, nil
	}
	return nil, account.ErrUserNotFound
}

func (fake *fakeUsers) FindByLogin(_ context.Context, login string) (*account.User, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for _, user := range fake.users {
		if user.Username == login || strings.EqualFold(user.Email, login) {
			return user, nil
		}
	}
	return nil, account.ErrUserNotFound
}

func (fake *fakeUsers) Exists(_ context.Context, username, email string) (bool, bool, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	var usernameTaken, emailTaken bool
	for _, user := range fake.users {
		usernameTaken = usernameTaken || user.Username == username
		emailTaken = emailTaken || strings.EqualFold(user.Email, email)
	}
	return usernameTaken, emailTaken, nil
}

func (fake *fakeUsers) Create(_ context.Context, user *account.User) error {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.users[user.ID] = user
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*account.Session
}

func (fake *fakeSessions) Create(_ context.Context, session *account.Session) error {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.sessions[session.TokenHash] = session
	return nil
}

func (fake *fakeSessions) FindByTokenHash(_ context.Context, tokenHash string) (*account.Session, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if session, ok := fake.sessions[tokenHash]; ok {
		return session, nil
	}
	return nil, account.ErrSessionNotFound
}

func (fake *fakeSessions) Revoke(_ context.Context, session *account.Session) error {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	delete(fake.sessions, session.TokenHash)
	return nil
}

func (fake *fakeSessions) RevokeAll(_ context.Context, userID string) error {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for hash, session := range fake.sessions {
		if session.UserID == userID {
			delete(fake.sessions, hash)
		}
	}
	return nil
}

func (fake *fakeSessions) count() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.sessions)
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, username string, _ time.Duration) (string, error) {
	return "access." + userID + "." + username, nil
}

// # Fixtures

func newService(t *testing.T) (*account.Service, *fakeSessions) {
	t.Helper()
	sessions := &fakeSessions{sessions: map[string]*account.Session{}}
	service := account.NewService(
		&fakeUsers{users: map[string]*account.User{}},
		sessions,
		fakeTokens{},
		account.Options{AccessTokenTTL: 10 * time.Minute},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return service, sessions
}

func register(t *testing.T, service *account.Service) *account.User {
	t.Helper()
	user, err := service.Register(context.Background(), account.RegisterInput{
		Username: "reader",
		Email:    "reader@drecktrack.app",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return user
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected an AppError, got %v", err)
	return ae.HTTPStatus
}

// # Registration

func TestService_Register(t *testing.T) {
	service, _ := newService(t)

	user := register(t, service)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "reader", user.DisplayName, "display name defaults to the username")
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestService_Register_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		input      account.RegisterInput
		wantStatus int
	}{
		{"short_username", account.RegisterInput{Username: "ab", Email: "x@drecktrack.app", Password: "longenough"}, http.StatusBadRequest},
		{"bad_username", account.RegisterInput{Username: "two words", Email: "x@drecktrack.app", Password: "longenough"}, http.StatusBadRequest},
		{"bad_email", account.RegisterInput{Username: "another", Email: "nope", Password: "longenough"}, http.StatusBadRequest},
		{"short_password", account.RegisterInput{Username: "another", Email: "x@drecktrack.app", Password: "short"}, http.StatusBadRequest},
		{"password_over_bcrypt_bytes", account.RegisterInput{Username: "another", Email: "x@drecktrack.app", Password: strings.Repeat("é", 40)}, http.StatusBadRequest},
		{"taken_username", account.RegisterInput{Username: "reader", Email: "x@drecktrack.app", Password: "longenough"}, http.StatusConflict},
		{"taken_email_any_case", account.RegisterInput{Username: "another", Email: "READER@drecktrack.app", Password: "longenough"}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newService(t)
			register(t, service)

			_, err := service.Register(context.Background(), tt.input)
			assert.Equal(t, tt.wantStatus, statusOf(t, err))
		})
	}
}

// # Authentication

func TestService_Login(t *testing.T) {
	service, sessions := newService(t)
	user := register(t, service)

	for _, login := range []string{"reader", "Reader@DreckTrack.app"} {
		tokens, err := service.Login(context.Background(), account.LoginInput{Login: login, Password: "correct horse battery"})
		require.NoError(t, err, login)

		assert.Equal(t, "access."+user.ID+".reader", tokens.AccessToken)
		assert.Equal(t, "Bearer", tokens.TokenType)
		assert.Equal(t, 600, tokens.ExpiresIn)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, user.ID, tokens.User.ID)
	}
	assert.Equal(t, 2, sessions.count())

	tests := []struct {
		name  string
		input account.LoginInput
		want  int
	}{
		{"wrong_password", account.LoginInput{Login: "reader", Password: "wrong password"}, http.StatusUnauthorized},
		{"unknown_user", account.LoginInput{Login: "ghost", Password: "correct horse battery"}, http.StatusUnauthorized},
		{"missing_fields", account.LoginInput{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			assert.Equal(t, tt.want, statusOf(t, err))
		})
	}
}

func TestService_Refresh_Rotates(t *testing.T) {
	service, sessions := newService(t)
	register(t, service)

	first, err := service.Login(context.Background(), account.LoginInput{Login: "reader", Password: "correct horse battery"})
	require.NoError(t, err)

	second, err := service.Refresh(context.Background(), first.RefreshToken, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, 1, sessions.count())

	// The rotated-out token is dead.
	_, err = service.Refresh(context.Background(), first.RefreshToken, "test-agent", "127.0.0.1")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = service.Refresh(context.Background(), second.RefreshToken, "test-agent", "127.0.0.1")
	assert.NoError(t, err)

	_, err = service.Refresh(context.Background(), "", "test-agent", "127.0.0.1")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestService_Logout(t *testing.T) {
	service, sessions := newService(t)
	user := register(t, service)

	tokens, err := service.Login(context.Background(), account.LoginInput{Login: "reader", Password: "correct horse battery"})
	require.NoError(t, err)

	// Another user's id cannot revoke the session.
	require.NoError(t, service.Logout(context.Background(), "someone-else", tokens.RefreshToken))
	assert.Equal(t, 1, sessions.count())

	require.NoError(t, service.Logout(context.Background(), user.ID, tokens.RefreshToken))
	assert.Zero(t, sessions.count())

	// Idempotent.
	assert.NoError(t, service.Logout(context.Background(), user.ID, tokens.RefreshToken))
}

func TestService_LogoutAll(t *testing.T) {
	service, sessions := newService(t)
	user := register(t, service)

	for range 3 {
		_, err := service.Login(context.Background(), account.LoginInput{Login: "reader", Password: "correct horse battery"})
		require.NoError(t, err)
	}
	require.Equal(t, 3, sessions.count())

	require.NoError(t, service.LogoutAll(context.Background(), user.ID))
	assert.Zero(t, sessions.count())
}

func TestService_Me(t *testing.T) {
	service, _ := newService(t)
	user := register(t, service)

	me, err := service.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "reader@drecktrack.app", me.Email)

	_, err = service.Me(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
