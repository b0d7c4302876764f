// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/drecktrack/internal/platform/apperr"
	"github.com/taibuivan/drecktrack/internal/platform/constants"
	"github.com/taibuivan/drecktrack/internal/platform/sec"
	"github.com/taibuivan/drecktrack/internal/platform/validate"
	"github.com/taibuivan/drecktrack/pkg/uuid"
)

// # Contracts & Types

// TokenProvider mints signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

// Options tunes token lifetimes. Zero values fall back to the platform defaults.
type Options struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Service implements registration, login and refresh-token rotation.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	options  Options
	logger   *slog.Logger

	now func() time.Time
}

// NewService constructs a new [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, options Options, logger *slog.Logger) *Service {
	if options.AccessTokenTTL <= 0 {
		options.AccessTokenTTL = constants.DefaultAccessTokenTTL
	}
	if options.RefreshTokenTTL <= 0 {
		options.RefreshTokenTTL = constants.DefaultRefreshTokenTTL
	}

	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		options:  options,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// # Registration

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: VALIDATION_ERROR, CONFLICT (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 32)
	if input.Username != "" {
		validator.Username(FieldUsername, input.Username)
	}
	validator.Email(FieldEmail, input.Email)
	validator.MinLen(FieldPassword, input.Password, 8).MaxLen(FieldPassword, input.Password, 72)
	validator.MaxLen(FieldDisplayName, input.DisplayName, 100)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 1. Identity uniqueness ──────────────────────────────────────────
	usernameTaken, emailTaken, err := service.users.Exists(context, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperr.Conflict("Email is already registered")
	}
	if usernameTaken {
		return nil, apperr.Conflict("Username is already taken")
	}

	// ── 2. Hash and persist ─────────────────────────────────────────────
	hashedPassword, err := sec.HashPassword(input.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, validate.RequiredError(FieldPassword, "Maximum 72 bytes")
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("account_service_hash_failed: %w", err))
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	now := service.now()
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("account_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

/*
Login validates credentials and issues a token pair.

Description: Looks the account up by username or email. Unknown accounts and
wrong passwords produce the same error to prevent enumeration.

Returns:
  - *Tokens: Access and refresh tokens
  - error: UNAUTHORIZED or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Tokens, error) {
	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByLogin(context, strings.TrimSpace(input.Login))
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if err != nil {
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	tokens, err := service.issue(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("account_logged_in", slog.String("user_id", user.ID))
	return tokens, nil
}

/*
Refresh implements refresh-token rotation.

Description: Verifies the presented refresh token, revokes its session so it
cannot be replayed, and issues a fresh pair.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *Tokens: New credentials
  - error: UNAUTHORIZED or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken, userAgent, ipAddress string) (*Tokens, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, validate.RequiredError(FieldRefreshToken, "This field is required")
	}

	session, err := service.sessions.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, err
	}

	// Rotation: the presented token is dead from here on
	if err := service.sessions.Revoke(context, session); err != nil {
		return nil, apperr.Internal(err)
	}

	user, err := service.users.FindByID(context, session.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperr.Unauthorized("User no longer exists")
	}
	if err != nil {
		return nil, err
	}

	return service.issue(context, user, userAgent, ipAddress)
}

/*
Logout revokes the session of refreshToken if it belongs to userID.

Description: Idempotent. Unknown tokens, and tokens of other users, are ignored.
*/
func (service *Service) Logout(context context.Context, userID, refreshToken string) error {
	session, err := service.sessions.FindByTokenHash(context, sec.HashToken(refreshToken))
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return apperr.Internal(err)
	}

	if session.UserID != userID {
		return nil
	}

	if err := service.sessions.Revoke(context, session); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("account_logged_out", slog.String("user_id", userID))
	return nil
}

// LogoutAll revokes every session of userID.
func (service *Service) LogoutAll(context context.Context, userID string) error {
	if err := service.sessions.RevokeAll(context, userID); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Warn("account_sessions_revoked", slog.String("user_id", userID))
	return nil
}

// Me returns the account of userID.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

// # Helpers

// issue mints an access token and stores a new refresh session.
func (service *Service) issue(context context.Context, user *User, userAgent, ipAddress string) (*Tokens, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, service.options.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("account_service_token_generation_failed: %w", err))
	}

	refreshToken, err := sec.GenerateSecureToken(constants.RefreshTokenBytes)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("account_service_refresh_token_failed: %w", err))
	}

	now := service.now()
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(service.options.RefreshTokenTTL),
		CreatedAt: now,
	}

	if err := service.sessions.Create(context, session); err != nil {
		return nil, apperr.Internal(err)
	}

	return &Tokens{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int(service.options.AccessTokenTTL.Seconds()),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		User:                  user,
	}, nil
}
