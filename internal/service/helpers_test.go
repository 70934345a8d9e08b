package service_test

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// newTxDB returns a database whose transactions are scripted through sqlmock.
// Store calls go to testify mocks, so only BEGIN/COMMIT/ROLLBACK reach it.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, sqlMock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, sqlMock
}

func expectCommit(m sqlmock.Sqlmock) {
	m.ExpectBegin()
	m.ExpectCommit()
}

func expectRollback(m sqlmock.Sqlmock) {
	m.ExpectBegin()
	m.ExpectRollback()
}
