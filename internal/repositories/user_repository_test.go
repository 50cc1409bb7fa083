package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dreamworldhq/storefront/internal/models"
	repository "github.com/dreamworldhq/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserRepoTest(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewUserRepo(db)
	require.NotNil(t, repo, "NewUserRepo should return a non-nil repository")

	return repo, mock
}

func userColumns() []string {
	return []string{"id", "name", "email", "password", "provider", "avatar_url", "created_at", "updated_at"}
}

func TestCreateUser(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		user := &models.User{Name: "Jane", Email: "jane@example.com", Password: "hashed", Provider: models.AuthProviderEmail}
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), user.Name, user.Email, user.Password, user.Provider, user.AvatarURL).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, now, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Insert Error", func(t *testing.T) {
		// Arrange
		user := &models.User{Name: "Jane", Email: "jane@example.com"}
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), user.Name, user.Email, user.Password, user.Provider, user.AvatarURL).
			WillReturnError(errors.New("unique violation"))

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByEmail(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()
	now := time.Now()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, name, email, password, provider, avatar_url, created_at, updated_at\s+FROM users\s+WHERE email`).
			WithArgs("jane@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow(userID, "Jane", "jane@example.com", "hashed", "email", "", now, now))

		// Act
		user, err := repo.GetUserByEmail(ctx, "jane@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, models.AuthProviderEmail, user.Provider)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, name, email, password, provider, avatar_url, created_at, updated_at\s+FROM users\s+WHERE email`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserByEmail(ctx, "nobody@example.com")

		// Assert
		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserById(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()
	now := time.Now()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, name, email, password, provider, avatar_url, created_at, updated_at\s+FROM users\s+WHERE id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow(userID, "Jane", "jane@example.com", "hashed", "github", "https://avatars.example.com/u/1", now, now))

		// Act
		user, err := repo.GetUserById(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.AuthProviderGitHub, user.Provider)
		assert.Equal(t, "https://avatars.example.com/u/1", user.AvatarURL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsertOAuthUser(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()
	now := time.Now()

	t.Run("Success - Existing Row Keeps Its ID", func(t *testing.T) {
		// Arrange
		existingID := uuid.New()
		user := &models.User{Name: "Jane", Email: "jane@example.com", Provider: models.AuthProviderGoogle, AvatarURL: "https://lh3.example.com/photo"}
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), user.Name, user.Email, user.Provider, user.AvatarURL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(existingID, now, now))

		// Act
		err := repo.UpsertOAuthUser(ctx, user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, existingID, user.ID, "the upsert adopts the id of the conflicting row")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		user := &models.User{Name: "Jane", Email: "jane@example.com", Provider: models.AuthProviderGoogle}
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), user.Name, user.Email, user.Provider, user.AvatarURL).
			WillReturnError(errors.New("connection reset"))

		// Act
		err := repo.UpsertOAuthUser(ctx, user)

		// Assert
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
