package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KJohnson82/MMPD/internal/model"
	pkgerrors "github.com/KJohnson82/MMPD/pkg/errors"
)

// newMockDB 基于 sqlmock 构造 gorm 连接（不开启默认事务，便于逐条断言 SQL）
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return db, mock
}

func intPtr(i int) *int { return &i }

// ── Location ──

func TestLocationRepo_Update_NoRowsIsConcurrentUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepo(db)

	mock.ExpectExec(`UPDATE "locations" SET .* WHERE id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Location{ID: 10, Name: "Plant A", LocationTypeID: 4})
	assert.ErrorIs(t, err, pkgerrors.ErrConcurrentUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRepo_Update_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepo(db)

	mock.ExpectExec(`UPDATE "locations" SET .*"record_add"=.* WHERE id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &model.Location{ID: 10, Name: "Plant A", LocationTypeID: 4})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRepo_CountActiveEmployees_JoinsDepartments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" JOIN departments ON departments.id = employees.department_id WHERE departments.location_id = \$1 AND employees.active = \$2`).
		WithArgs(10, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountActiveEmployees(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRepo_SetActive_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepo(db)

	mock.ExpectExec(`UPDATE "locations" SET "active"=\$1,"record_add"=\$2 WHERE id = \$3`).
		WithArgs(false, sqlmock.AnyArg(), 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), 99, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRepo_MaxRecordAdd(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepo(db)

	ts := time.Date(2025, 6, 27, 1, 27, 4, 0, time.UTC)
	mock.ExpectQuery(`SELECT MAX\(record_add\) FROM "locations"`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(ts))

	got, err := repo.MaxRecordAdd(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Department ──

func TestDepartmentRepo_ListActiveByLocationIDs_EmptySkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDepartmentRepo(db)

	depts, err := repo.ListActiveByLocationIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, depts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepo_CountActiveEmployees(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDepartmentRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE department_id = \$1 AND active = \$2`).
		WithArgs(20, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountActiveEmployees(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// ── Employee ──

func TestEmployeeRepo_MaxRecordAdd_EmptyTable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepo(db)

	mock.ExpectQuery(`SELECT MAX\(record_add\) FROM "employees"`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	got, err := repo.MaxRecordAdd(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEmployeeRepo_ListActiveByDepartmentIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepo(db)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "department_id", "active"}).
		AddRow(30, "Jane", "Doe", 20, true)
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE department_id IN \(\$1,\$2\) AND active = \$3 ORDER BY first_name ASC,last_name ASC`).
		WithArgs(20, 21, true).
		WillReturnRows(rows)

	emps, err := repo.ListActiveByDepartmentIDs(context.Background(), []int{20, 21})
	require.NoError(t, err)
	require.Len(t, emps, 1)
	assert.Equal(t, "Jane", emps[0].FirstName)
	assert.Equal(t, intPtr(20), emps[0].DepartmentID)
	assert.True(t, emps[0].IsActive())
}

// ── LocationType ──

func TestLocationTypeRepo_Delete_InUse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationTypeRepo(db)

	mock.ExpectExec(`DELETE FROM "location_types" WHERE id = \$1`).
		WithArgs(4).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

	err := repo.Delete(context.Background(), 4)
	assert.True(t, pkgerrors.IsForeignKeyViolation(err))
}

func TestLocationTypeRepo_Delete_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationTypeRepo(db)

	mock.ExpectExec(`DELETE FROM "location_types" WHERE id = \$1`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
