// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/constants"
)

// # Sign-in State Repository

// RedisStateRepository implements StateRepository using Redis.
type RedisStateRepository struct {
	client *redis.Client
}

// NewStateRepository creates a new Redis-backed StateRepository.
func NewStateRepository(client *redis.Client) *RedisStateRepository {
	return &RedisStateRepository{client: client}
}

func (repository *RedisStateRepository) Save(context context.Context, state string, value SignInState, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("signin_state_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, constants.RedisPrefixSignInState+state, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_signin_state_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisStateRepository) Consume(context context.Context, state string) (*SignInState, error) {

	// GETDEL makes the state single-use
	payload, err := repository.client.GetDel(context, constants.RedisPrefixSignInState+state).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.Unauthorized(MsgSignInExpired)
		}
		return nil, fmt.Errorf("redis_signin_state_get_failed: %w", err)
	}

	var value SignInState
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, fmt.Errorf("signin_state_decode_failed: %w", err)
	}
	return &value, nil
}

// # Session Repository

// RedisSessionRepository implements SessionRepository using Redis.
//
// Sessions expire through the key TTL; there is no cleanup job.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (repository *RedisSessionRepository) Create(context context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, constants.RedisPrefixSession+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) Find(context context.Context, sessionID string) (*Session, error) {
	payload, err := repository.client.Get(context, constants.RedisPrefixSession+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("session_decode_failed: %w", err)
	}
	return &session, nil
}

func (repository *RedisSessionRepository) Delete(context context.Context, sessionID string) error {
	if err := repository.client.Del(context, constants.RedisPrefixSession+sessionID).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
