package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("StoredValue", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSettingRepository(db)

		mock.ExpectQuery("SELECT \\* FROM `settings` WHERE `key` = \\?").
			WithArgs("userRole", 1).
			WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow("userRole", "treasurer"))

		value, err := repo.Get(ctx, "userRole")
		require.NoError(t, err)
		assert.Equal(t, "treasurer", value)
	})

	t.Run("AbsentKeyIsEmptyNotError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSettingRepository(db)

		mock.ExpectQuery("SELECT \\* FROM `settings` WHERE `key` = \\?").
			WithArgs("userRole", 1).
			WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))

		value, err := repo.Get(ctx, "userRole")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})
}

func TestSettingRepository_Set(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewSettingRepository(db)

	mock.ExpectExec("INSERT INTO `settings`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(ctx, "userRole", "treasurer"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepository_List(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `audit_log`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT \\* FROM `audit_log` ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "action"}).
			AddRow("a2", "WITHDRAWAL").
			AddRow("a1", "ROLE_CHANGE"))

	entries, total, err := repo.List(ctx, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	assert.Equal(t, "a2", entries[0].ID)
}
