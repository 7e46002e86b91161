package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"todoapi/internal/common"
	"todoapi/internal/logging"
	"todoapi/internal/server/config"
	"todoapi/internal/server/models"
	"todoapi/internal/server/shared/db"
)

func newTodoServiceWithMock(t *testing.T) (*TodoService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	provider := db.NewProvider(sqlDB, logging.NewJSON(io.Discard))
	return NewTodoService(provider, cfg), mock, sqlDB
}

func TestTodoService_ListOpen(t *testing.T) {
	s, mock, sqlDB := newTodoServiceWithMock(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT id, flag, plan, result FROM todos\s+WHERE flag <> 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "flag", "plan", "result"}).
			AddRow(int64(1), 0, "plan", "result"))

	items, err := s.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(1), items[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoService_GetByID_NotFound(t *testing.T) {
	s, mock, sqlDB := newTodoServiceWithMock(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT id, flag, plan, result FROM todos\s+WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), 42)
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestTodoService_Create(t *testing.T) {
	s, mock, sqlDB := newTodoServiceWithMock(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`INSERT INTO todos \(flag, plan, result\)`).
		WithArgs(0, "P", "R").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	created, err := s.Create(context.Background(), &models.Todo{Plan: "P", Result: "R"})
	require.NoError(t, err)
	require.Equal(t, int64(9), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoService_StoreDownIsUnavailable(t *testing.T) {
	s, mock, sqlDB := newTodoServiceWithMock(t)

	// A closed handle stands in for an unreachable backend: the failure
	// must surface as a recoverable error, never terminate anything.
	mock.ExpectClose()
	require.NoError(t, sqlDB.Close())

	_, err := s.ListOpen(context.Background())
	require.True(t, errors.Is(err, common.ErrStoreUnavailable))
}

func TestTodoService_CallerCancellationDoesNotAbortQuery(t *testing.T) {
	s, mock, sqlDB := newTodoServiceWithMock(t)
	defer sqlDB.Close()

	mock.ExpectExec(`DELETE FROM todos\s+WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Simulates a client that disconnected before the query ran. The
	// operation still completes on its own detached context.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	affected, err := s.Delete(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
}
