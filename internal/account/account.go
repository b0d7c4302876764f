// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements the user identity and session layer of DreckTrack.

It owns registration, credential checks and the refresh-token lifecycle that
issues the bearer tokens every collection endpoint requires.

# Architecture

  - Users: Persisted in PostgreSQL (users.account), passwords hashed with bcrypt.
  - Sessions: Refresh tokens stored hashed in Redis with a TTL.
  - Access: Short-lived RS256 JWTs minted through a [TokenProvider].
*/
package account

import (
	"time"
)

// # Domain Entities

// User is a registered DreckTrack account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session is an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"tokenHash"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tokens is the credential pair handed to a client after login or refresh.
type Tokens struct {
	AccessToken           string    `json:"accessToken"`
	TokenType             string    `json:"tokenType"`
	ExpiresIn             int       `json:"expiresIn"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	User                  *User     `json:"user"`
}

// # Field Identifiers

const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldDisplayName  = "displayName"
	FieldLogin        = "login"
	FieldRefreshToken = "refreshToken"
)
