package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

// Every reorder statement must carry the ownership predicate; omitting it
// on any single statement would let a caller renumber someone else's tasks.
func TestReorder_CarriesOwnershipPredicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	const ownerID = uint64(42)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET .+ WHERE id = \\? AND created_by_user_id = \\?").
		WithArgs(2, sqlmock.AnyArg(), 1, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `tasks` SET .+ WHERE id = \\? AND created_by_user_id = \\?").
		WithArgs(0, sqlmock.AnyArg(), 2, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Reorder(ownerID, []OrderUpdate{
		{ID: 1, OrderNo: 2},
		{ID: 2, OrderNo: 0},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A failing statement anywhere in the batch rolls back the whole reorder.
func TestReorder_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	const ownerID = uint64(42)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET .+ WHERE id = \\? AND created_by_user_id = \\?").
		WithArgs(1, sqlmock.AnyArg(), 1, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `tasks` SET .+ WHERE id = \\? AND created_by_user_id = \\?").
		WithArgs(0, sqlmock.AnyArg(), 2, ownerID).
		WillReturnError(gorm.ErrInvalidData)
	mock.ExpectRollback()

	err := repo.Reorder(ownerID, []OrderUpdate{
		{ID: 1, OrderNo: 1},
		{ID: 2, OrderNo: 0},
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
