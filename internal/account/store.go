// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/drecktrack/internal/platform/apperr"
)

var (
	// ErrUserNotFound is returned when no account matches a lookup.
	ErrUserNotFound = apperr.NotFound("User")

	// ErrSessionNotFound is returned when a refresh token has no live session.
	ErrSessionNotFound = apperr.Unauthorized("Invalid or expired refresh token")
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByLogin returns the account whose username or email equals login.
		Email matching ignores case.
	*/
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		Exists reports whether the username or the email is already taken.

		Returns:
		  - usernameTaken: bool
		  - emailTaken: bool
		  - error: Database failures
	*/
	Exists(context context.Context, username, email string) (usernameTaken bool, emailTaken bool, err error)

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: CONFLICT on a unique violation, or persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	/*
		Create stores a session until its ExpiresAt.
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the live session for a hashed refresh token.

		Returns:
		  - *Session: The stored session
		  - error: ErrSessionNotFound if the token is unknown, revoked or expired
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke invalidates one session. Revoking a missing session is not an error.
	*/
	Revoke(context context.Context, session *Session) error

	/*
		RevokeAll invalidates every session of userID.
	*/
	RevokeAll(context context.Context, userID string) error
}
