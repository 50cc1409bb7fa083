package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dreamworldhq/storefront/internal/utils"
	"github.com/redis/go-redis/v9"
)

// OAuthStateRepository round-trips the anti-CSRF state parameter of the
// GitHub authorization-code flow. A state is single-use: Take consumes it.
type OAuthStateRepository interface {
	Put(ctx context.Context, state string) error
	Take(ctx context.Context, state string) (bool, error)
}

type oauthStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOAuthStateRepo(client *redis.Client, ttl time.Duration) OAuthStateRepository {
	return &oauthStateRepository{client: client, ttl: ttl}
}

func stateKey(state string) string {
	return fmt.Sprintf("oauth_state:%s", state)
}

func (r *oauthStateRepository) Put(ctx context.Context, state string) error {

	redisCtx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	if err := r.client.Set(redisCtx, stateKey(state), "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}

	return nil
}

func (r *oauthStateRepository) Take(ctx context.Context, state string) (bool, error) {

	redisCtx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	_, err := r.client.GetDel(redisCtx, stateKey(state)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}

		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}

	return true, nil
}
