package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rchoud/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSessionStore_Add(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSessionStore(db, nil)
	userID := uuid.New()

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(sqlmock.AnyArg(), userID, "jwt-token", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.Add(context.Background(), userID, "jwt-token"))
}

func TestPostgresSessionStore_Exists(t *testing.T) {
	t.Run("listed token", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSessionStore(db, nil)
		userID := uuid.New()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(userID, "jwt-token").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		ok, err := s.Exists(context.Background(), userID, "jwt-token")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unlisted token", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSessionStore(db, nil)

		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		ok, err := s.Exists(context.Background(), uuid.New(), "revoked-token")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPostgresSessionStore_Delete(t *testing.T) {
	t.Run("removes exactly one token", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSessionStore(db, nil)
		userID := uuid.New()

		mock.ExpectExec("DELETE FROM sessions WHERE user_id = \\$1 AND token = \\$2").
			WithArgs(userID, "jwt-token").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(context.Background(), userID, "jwt-token"))
	})

	t.Run("token not listed", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSessionStore(db, nil)

		mock.ExpectExec("DELETE FROM sessions WHERE user_id = \\$1 AND token = \\$2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Delete(context.Background(), uuid.New(), "unknown-token")
		assert.ErrorIs(t, err, store.ErrSessionNotFound)
	})
}

func TestPostgresSessionStore_DeleteAll(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSessionStore(db, nil)
	userID := uuid.New()

	mock.ExpectExec("DELETE FROM sessions WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 4))

	assert.NoError(t, s.DeleteAll(context.Background(), userID))
}
