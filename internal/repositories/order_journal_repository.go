package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/dreamworldhq/storefront/internal/utils"
	"github.com/google/uuid"
)

// OrderJournalRepository records every submitted order locally before the
// remote back-office write is attempted. The remote write is deliberately
// non-blocking, so this journal is the durable trail for writes that fail.
type OrderJournalRepository interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
	UpdateRemoteStatus(ctx context.Context, snapshotID uuid.UUID, status models.RemoteStatus) error
	GetBySnapshotID(ctx context.Context, snapshotID uuid.UUID) (*models.JournalEntry, error)
	ListPending(ctx context.Context, limit int) ([]models.JournalEntry, error)
}

type orderJournalRepository struct {
	DB *sql.DB
}

func NewOrderJournalRepo(db *sql.DB) OrderJournalRepository {
	return &orderJournalRepository{DB: db}
}

func (r *orderJournalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {

	dbCtx, cancel := utils.WithSQLTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO order_journal (id, snapshot_id, user_id, snapshot, remote_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	err := r.DB.QueryRowContext(dbCtx, query, entry.ID, entry.SnapshotID, entry.UserID, entry.Snapshot, entry.RemoteStatus).
		Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	return nil
}

func (r *orderJournalRepository) UpdateRemoteStatus(ctx context.Context, snapshotID uuid.UUID, status models.RemoteStatus) error {

	dbCtx, cancel := utils.WithSQLTimeout(ctx)
	defer cancel()

	query := `
		UPDATE order_journal SET remote_status = $1, updated_at = NOW() WHERE snapshot_id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, snapshotID)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *orderJournalRepository) GetBySnapshotID(ctx context.Context, snapshotID uuid.UUID) (*models.JournalEntry, error) {

	dbCtx, cancel := utils.WithSQLTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, snapshot_id, user_id, snapshot, remote_status, created_at, updated_at
		FROM order_journal
		WHERE snapshot_id = $1
	`

	entry := &models.JournalEntry{}

	err := r.DB.QueryRowContext(dbCtx, query, snapshotID).
		Scan(&entry.ID, &entry.SnapshotID, &entry.UserID, &entry.Snapshot, &entry.RemoteStatus, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return entry, nil
}

// ListPending returns journal entries whose remote write has not succeeded,
// oldest first.
func (r *orderJournalRepository) ListPending(ctx context.Context, limit int) ([]models.JournalEntry, error) {

	dbCtx, cancel := utils.WithSQLTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, snapshot_id, user_id, snapshot, remote_status, created_at, updated_at
		FROM order_journal
		WHERE remote_status IN ('pending', 'failed')
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(dbCtx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending journal entries: %w", err)
	}

	defer rows.Close()

	var entries []models.JournalEntry

	for rows.Next() {

		var entry models.JournalEntry

		err := rows.Scan(&entry.ID, &entry.SnapshotID, &entry.UserID, &entry.Snapshot, &entry.RemoteStatus, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		entries = append(entries, entry)

	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
