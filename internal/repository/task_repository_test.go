package repository

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestListActivePropagatesStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	storeErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT").WillReturnError(storeErr)

	_, err := repo.ListActive(TaskFilter{ViewerID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCompletedPropagatesStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	storeErr := errors.New("driver: bad connection")
	mock.ExpectQuery("SELECT").WillReturnError(storeErr)

	_, err := repo.ListCompleted(TaskFilter{ViewerID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}

func TestListDescendantsPropagatesStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	storeErr := errors.New("lock wait timeout exceeded")
	mock.ExpectQuery("SELECT").WillReturnError(storeErr)

	_, err := repo.ListDescendants([]uint64{1}, TaskFilter{ViewerID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}

func TestListVisibleCompaniesPropagatesStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCompanyRepository(db)

	storeErr := errors.New("connection refused")
	mock.ExpectQuery("SELECT").WillReturnError(storeErr)

	_, err := repo.ListVisibleCompanies(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}
