package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/examsync/examsync-api/pkg/errors"
)

// ResetTokenRepository stores password reset tokens in Redis. Tokens expire
// on their own; confirmation deletes them so each is single use.
type ResetTokenRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResetTokenRepository instantiates a reset token store.
func NewResetTokenRepository(client *redis.Client, ttl time.Duration) *ResetTokenRepository {
	return &ResetTokenRepository{client: client, ttl: ttl}
}

func resetTokenKey(userID int64) string {
	return fmt.Sprintf("password_reset:%d", userID)
}

// Store saves the token under the user's key, replacing any previous one.
func (r *ResetTokenRepository) Store(ctx context.Context, userID int64, token string) error {
	if err := r.client.Set(ctx, resetTokenKey(userID), token, r.ttl).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	return nil
}

// Get returns the live token for the user, or ErrCacheMiss when none exists
// or it has expired.
func (r *ResetTokenRepository) Get(ctx context.Context, userID int64) (string, error) {
	token, err := r.client.Get(ctx, resetTokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", appErrors.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("get reset token: %w", err)
	}
	return token, nil
}

// Delete removes the user's token.
func (r *ResetTokenRepository) Delete(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, resetTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	return nil
}
