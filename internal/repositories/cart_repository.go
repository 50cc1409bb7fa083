package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/dreamworldhq/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CartRepository persists each cart as one whole JSON value, rewritten on
// every mutation. Last write wins; no merge across concurrent writers is
// attempted.
type CartRepository interface {
	Load(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Save(ctx context.Context, userID uuid.UUID, cart *models.Cart) error
}

type cartRepository struct {
	client *redis.Client
}

func NewCartRepo(client *redis.Client) CartRepository {
	return &cartRepository{client: client}
}

func cartKey(userID uuid.UUID) string {
	return fmt.Sprintf("cart:%s", userID)
}

// Load returns the persisted cart for the session. A missing or malformed
// stored value yields an empty cart, never an error: corruption is logged
// and the value is treated as absent.
func (r *cartRepository) Load(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	redisCtx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	data, err := r.client.Get(redisCtx, cartKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return models.NewCart(), nil
		}

		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	cart := &models.Cart{}
	if err := json.Unmarshal(data, cart); err != nil {
		slog.Warn("Discarding malformed persisted cart",
			slog.String("userId", userID.String()),
			slog.String("error", err.Error()))

		return models.NewCart(), nil
	}

	if cart.SchemaVersion != models.CartSchemaVersion {
		slog.Warn("Discarding persisted cart with unknown schema version",
			slog.String("userId", userID.String()),
			slog.Int("schema_version", cart.SchemaVersion))

		return models.NewCart(), nil
	}

	if cart.Items == nil {
		cart.Items = []models.LineItem{}
	}

	return cart, nil
}

func (r *cartRepository) Save(ctx context.Context, userID uuid.UUID, cart *models.Cart) error {

	cart.SchemaVersion = models.CartSchemaVersion
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	redisCtx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	if err := r.client.Set(redisCtx, cartKey(userID), string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}
