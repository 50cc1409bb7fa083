package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/dreamworldhq/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SnapshotRepository keeps order snapshots around for the lifetime of the
// session so an invoice can be regenerated without resubmitting the order.
// Entries expire on their own; snapshots are never mutated.
type SnapshotRepository interface {
	Store(ctx context.Context, userID uuid.UUID, snapshot *models.OrderSnapshot) error
	Get(ctx context.Context, userID uuid.UUID, snapshotID uuid.UUID) (*models.OrderSnapshot, error)
}

type snapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotRepo(client *redis.Client, ttl time.Duration) SnapshotRepository {
	return &snapshotRepository{client: client, ttl: ttl}
}

func snapshotKey(userID, snapshotID uuid.UUID) string {
	return fmt.Sprintf("snapshot:%s:%s", userID, snapshotID)
}

func (r *snapshotRepository) Store(ctx context.Context, userID uuid.UUID, snapshot *models.OrderSnapshot) error {

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	redisCtx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	if err := r.client.Set(redisCtx, snapshotKey(userID, snapshot.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

func (r *snapshotRepository) Get(ctx context.Context, userID uuid.UUID, snapshotID uuid.UUID) (*models.OrderSnapshot, error) {

	redisCtx, cancel := utils.WithRedisTimeout(ctx)
	defer cancel()

	data, err := r.client.Get(redisCtx, snapshotKey(userID, snapshotID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, err
		}

		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snapshot := &models.OrderSnapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return snapshot, nil
}
