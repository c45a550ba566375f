package backups

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/warrantyguard/internal/common"
	"github.com/dmitrijs2005/warrantyguard/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	upsertQuery = `(?s)^INSERT\s+INTO\s+backups\s*\(user_id,\s*last_updated,\s*products\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s*\(user_id\)\s*DO\s+UPDATE.*$`
	selectQuery = `(?s)^SELECT\s+last_updated,\s*products\s+FROM\s+backups\s+WHERE\s+user_id\s*=\s*\$1\s*$`
)

func TestPostgresRepository_Put(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(upsertQuery).
		WithArgs("alice", "2024-06-01T10:00:00Z", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), "alice", sampleBackup(t)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Put_NilProductsStoredAsEmptyArray(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(upsertQuery).
		WithArgs("bob", "now", "[]").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), "bob", &models.Backup{LastUpdated: "now"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Put_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(upsertQuery).WillReturnError(errors.New("db down"))

	err := repo.Put(context.Background(), "alice", sampleBackup(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestPostgresRepository_Get(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"last_updated", "products"}).
		AddRow("2024-06-01T10:00:00Z", []byte(`[{"id":"p1","name":"TV","serialNumber":"SN-1","purchaseDate":"2024-01-15","warrantyMonths":12,"category":"electronics"}]`))
	mock.ExpectQuery(selectQuery).WithArgs("alice").WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, sampleBackup(t), got)
}

func TestPostgresRepository_Get_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("nobody").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPostgresRepository_Get_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("alice").WillReturnError(errors.New("boom"))

	_, err := repo.Get(context.Background(), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}
