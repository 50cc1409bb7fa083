// Package mocks holds hand-written testify mocks for the repository
// interfaces.
package mocks

import (
	"context"

	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) Load(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartRepository) Save(ctx context.Context, userID uuid.UUID, cart *models.Cart) error {
	args := m.Called(ctx, userID, cart)

	return args.Error(0)
}

type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Store(ctx context.Context, userID uuid.UUID, snapshot *models.OrderSnapshot) error {
	args := m.Called(ctx, userID, snapshot)

	return args.Error(0)
}

func (m *SnapshotRepository) Get(ctx context.Context, userID, snapshotID uuid.UUID) (*models.OrderSnapshot, error) {
	args := m.Called(ctx, userID, snapshotID)

	if snapshot, ok := args.Get(0).(*models.OrderSnapshot); ok {
		return snapshot, args.Error(1)
	}

	return nil, args.Error(1)
}

type OrderJournalRepository struct {
	mock.Mock
}

func (m *OrderJournalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	args := m.Called(ctx, entry)

	return args.Error(0)
}

func (m *OrderJournalRepository) UpdateRemoteStatus(ctx context.Context, snapshotID uuid.UUID, status models.RemoteStatus) error {
	args := m.Called(ctx, snapshotID, status)

	return args.Error(0)
}

func (m *OrderJournalRepository) GetBySnapshotID(ctx context.Context, snapshotID uuid.UUID) (*models.JournalEntry, error) {
	args := m.Called(ctx, snapshotID)

	if entry, ok := args.Get(0).(*models.JournalEntry); ok {
		return entry, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderJournalRepository) ListPending(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	args := m.Called(ctx, limit)

	if entries, ok := args.Get(0).([]models.JournalEntry); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) UpsertOAuthUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type OAuthStateRepository struct {
	mock.Mock
}

func (m *OAuthStateRepository) Put(ctx context.Context, state string) error {
	args := m.Called(ctx, state)

	return args.Error(0)
}

func (m *OAuthStateRepository) Take(ctx context.Context, state string) (bool, error) {
	args := m.Called(ctx, state)

	return args.Bool(0), args.Error(1)
}
