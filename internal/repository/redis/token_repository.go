package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dinesmart/domain"

	"github.com/redis/go-redis/v9"
)

// SessionData is what login stores per issued token. The reverse lookup
// token -> user id is what the auth middleware checks on every request, so
// logout and admin suspension take effect without waiting for JWT expiry.
type SessionData struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func (r *TokenRepository) StoreToken(ctx context.Context, userID, token string, data SessionData, ttl time.Duration) error {
	key := fmt.Sprintf("session:user:%s", userID)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	lookupKey := fmt.Sprintf("session:lookup:%s", token)
	if err := r.client.Set(ctx, lookupKey, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session lookup: %w", err)
	}

	return nil
}

// ValidateToken resolves a bearer token to the user id it was issued to.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	lookupKey := fmt.Sprintf("session:lookup:%s", token)

	userID, err := r.client.Get(ctx, lookupKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrUnauthenticated
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

func (r *TokenRepository) DeleteToken(ctx context.Context, userID, token string) error {
	key := fmt.Sprintf("session:user:%s", userID)
	lookupKey := fmt.Sprintf("session:lookup:%s", token)

	if err := r.client.Del(ctx, key, lookupKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
