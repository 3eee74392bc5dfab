package redis_test

import (
	"context"
	"testing"
	"time"

	"dinesmart/domain"
	redisRepo "dinesmart/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*redisRepo.TokenRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return redisRepo.NewTokenRepository(client), mr
}

func TestStoreAndValidateToken(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	now := time.Now()
	err := repo.StoreToken(ctx, "42", "tok-abc", redisRepo.SessionData{
		UserID:    "42",
		Role:      domain.RoleCustomer,
		Token:     "tok-abc",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, time.Hour)
	require.NoError(t, err)

	userID, err := repo.ValidateToken(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "42", userID)
}

func TestValidateToken_Unknown(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.ValidateToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestValidateToken_ExpiredSession(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.StoreToken(ctx, "42", "tok-abc", redisRepo.SessionData{
		UserID: "42", Token: "tok-abc", IssuedAt: now, ExpiresAt: now.Add(time.Minute),
	}, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := repo.ValidateToken(ctx, "tok-abc")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestDeleteToken_RevokesSession(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.StoreToken(ctx, "42", "tok-abc", redisRepo.SessionData{
		UserID: "42", Token: "tok-abc", IssuedAt: now, ExpiresAt: now.Add(time.Hour),
	}, time.Hour))

	require.NoError(t, repo.DeleteToken(ctx, "42", "tok-abc"))

	_, err := repo.ValidateToken(ctx, "tok-abc")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.False(t, mr.Exists("session:user:42"))
}
