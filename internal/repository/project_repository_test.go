package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nonetrello/nonetrello-api/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// A failed owner insert must take the project row down with it.
func TestCreateWithOwnerAndBoards_RollsBackOnOwnerFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProjectRepository(db)

	boom := errors.New("duplicate key value violates unique constraint")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "collaborators"`)).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.CreateWithOwnerAndBoards(&models.Project{Title: "doomed"}, 7, models.DefaultBoardTitles)
	require.ErrorIs(t, err, ErrCreateOwner)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A failed board insert rolls back the project and owner rows too.
func TestCreateWithOwnerAndBoards_RollsBackOnBoardFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProjectRepository(db)

	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "collaborators"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "boards"`)).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.CreateWithOwnerAndBoards(&models.Project{Title: "doomed"}, 7, models.DefaultBoardTitles)
	require.ErrorIs(t, err, ErrCreateDefaultBoards)
	require.NoError(t, mock.ExpectationsWereMet())
}
