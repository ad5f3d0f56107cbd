package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestReassign_GuardsOnCurrentAssignee(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WithArgs(uint64(9), sqlmock.AnyArg(), uint64(1), uint64(2), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := repo.Reassign([]uint64{1, 2}, 5, 9)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReassign_EmptyIDsHitsNoSQL(t *testing.T) {
	repo, mock := setupMockDB(t)

	affected, err := repo.Reassign(nil, 5, 9)
	assert.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBatch_EmptyIDsHitsNoSQL(t *testing.T) {
	repo, mock := setupMockDB(t)

	affected, err := repo.UpdateBatch(nil, map[string]interface{}{"priority": "high"})
	assert.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOverdue_FiltersOnDueDate(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "public_id", "title", "status"}).
		AddRow(1, "a4c5e0e2-0000-0000-0000-000000000001", "Overdue", "pending")
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE .*due_date IS NOT NULL AND due_date <`).
		WithArgs(now).
		WillReturnRows(rows)

	tasks, err := repo.ListOverdue(now)
	assert.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Overdue", tasks[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
