package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/marketbase/storefront/internal/models"
	repository "github.com/marketbase/storefront/internal/repositories"
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

func TestCreateUser(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta("INSERT INTO users")

	t.Run("Success", func(t *testing.T) {
		// Arrange
		user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
		userID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(expectedSQL).
			WithArgs(user.Username, user.Email, user.Password, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(userID, now))

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
	})

	t.Run("Failure - Duplicate Username", func(t *testing.T) {
		// Arrange
		user := &models.User{Username: "alice", Email: "alice2@example.com", Password: "hashed"}
		pqErr := &pq.Error{Code: "23505", Constraint: "users_username_key"}

		mock.ExpectQuery(expectedSQL).
			WithArgs(user.Username, user.Email, user.Password, false).
			WillReturnError(pqErr)

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, pqErr)
		require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
	})
}

func TestGetUserByUsername(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta("WHERE username = $1")

	columns := []string{"id", "username", "email", "password", "is_admin", "created_at"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userID := uuid.New()
		mock.ExpectQuery(expectedSQL).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(userID, "alice", "alice@example.com", "hashed", true, time.Now()))

		// Act
		user, err := repo.GetUserByUsername(ctx, "alice")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.True(t, user.IsAdmin)
		require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(expectedSQL).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserByUsername(ctx, "ghost")

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
		require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
	})
}

func TestGetUserByID(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta("WHERE id = $1")

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		mock.ExpectQuery(expectedSQL).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserByID(ctx, id)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
		require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
	})
}
