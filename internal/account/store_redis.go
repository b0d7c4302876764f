// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/drecktrack/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// # Layout
//
//   - auth:session:<tokenHash>      JSON session, expires with the refresh token.
//   - auth:user_sessions:<userID>   Set of the user's token hashes, for RevokeAll.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new Redis-backed [SessionRepository].
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Create stores a session keyed by its token hash with a TTL until ExpiresAt.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session %s already expired", session.ID)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	userKey := constants.RedisPrefixUserSession + session.UserID

	// Session and index entry are written together
	pipe := repository.client.TxPipeline()
	pipe.Set(context, sessionKey(session.TokenHash), payload, ttl)
	pipe.SAdd(context, userKey, session.TokenHash)
	pipe.Expire(context, userKey, ttl)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash returns the session for a hashed refresh token.

Description: Returns ErrSessionNotFound if the key is absent, which covers
revoked and expired sessions alike.
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return session, nil
}

/*
Revoke deletes one session and its index entry.
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, session *Session) error {
	pipe := repository.client.TxPipeline()
	pipe.Del(context, sessionKey(session.TokenHash))
	pipe.SRem(context, constants.RedisPrefixUserSession+session.UserID, session.TokenHash)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeAll deletes every session indexed for userID.
*/
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	userKey := constants.RedisPrefixUserSession + userID

	hashes, err := repository.client.SMembers(context, userKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_list_failed: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKey(hash))
	}
	keys = append(keys, userKey)

	if err := repository.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	return nil
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}
