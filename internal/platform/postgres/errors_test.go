package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moviecatalog/movie-api/internal/store"
	"github.com/stretchr/testify/assert"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, nil }

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedErr error
		expectedMsg string
	}{
		{name: "nil_error"},
		{name: "sql_no_rows", err: sql.ErrNoRows, expectedErr: store.ErrNotFound},
		{
			name:        "unique_violation",
			err:         &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "movies_name_lower_key"},
			expectedErr: store.ErrDuplicate,
		},
		{
			name:        "foreign_key_violation",
			err:         &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "movies_category_id_fkey"},
			expectedErr: store.ErrInvalidEntity,
			expectedMsg: "foreign key violation (movies_category_id_fkey)",
		},
		{
			name:        "check_constraint_violation",
			err:         &pgconn.PgError{Code: checkViolationCode, ConstraintName: "movies_duration_check"},
			expectedErr: store.ErrInvalidEntity,
			expectedMsg: "check constraint violation",
		},
		{
			name:        "not_null_violation",
			err:         &pgconn.PgError{Code: notNullViolationCode, ColumnName: "name"},
			expectedErr: store.ErrInvalidEntity,
			expectedMsg: "not null violation (name)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.expectedErr)
			if tt.expectedMsg != "" {
				assert.Contains(t, got.Error(), tt.expectedMsg)
			}
		})
	}

	t.Run("generic_error_is_returned_unchanged", func(t *testing.T) {
		original := errors.New("connection reset")
		assert.Same(t, original, MapError(original))
	})
}

func TestViolationPredicates(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolationCode}
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}
	check := &pgconn.PgError{Code: checkViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
	assert.True(t, IsCheckConstraintViolation(check))
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrMovieNotFound))
	assert.ErrorIs(t, CheckRowsAffected(mockResult{}, store.ErrMovieNotFound), store.ErrMovieNotFound)
	assert.ErrorIs(t, CheckRowsAffected(mockResult{}, nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))

	err := CheckRowsAffected(mockResult{err: errors.New("driver failure")}, nil)
	assert.ErrorContains(t, err, "failed to get rows affected")
}

func TestMapUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolationCode}

	assert.ErrorIs(t, MapUniqueViolation(unique, store.ErrCategoryExists), store.ErrCategoryExists)
	assert.ErrorIs(t, MapUniqueViolation(unique, nil), store.ErrDuplicate)

	other := errors.New("other")
	assert.Same(t, other, MapUniqueViolation(other, store.ErrCategoryExists))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
