package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userRowColumns = []string{"id", "user_name", "name", "hashed_password", "role", "created_at", "updated_at"}

func TestNewPostgresUserStore(t *testing.T) {
	tests := []struct {
		name       string
		bcryptCost int
		wantCost   int
	}{
		{name: "valid_cost", bcryptCost: 12, wantCost: 12},
		{name: "zero_cost_uses_default", bcryptCost: 0, wantCost: bcrypt.DefaultCost},
		{name: "cost_too_low_uses_default", bcryptCost: 3, wantCost: bcrypt.DefaultCost},
		{name: "cost_too_high_uses_default", bcryptCost: 32, wantCost: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPostgresUserStore(&sql.DB{}, tt.bcryptCost, nil)
			assert.Equal(t, tt.wantCost, s.bcryptCost)
			assert.NotNil(t, s.DB())
		})
	}

	assert.Panics(t, func() { NewPostgresUserStore(nil, 10, nil) })
}

func TestPostgresUserStore_Create(t *testing.T) {
	t.Run("hashes password and clears plaintext", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
		user, err := domain.NewUser("moviefan", "Movie Fan", "secret123", domain.RoleRegistered)
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID.String(), "moviefan", "Movie Fan", sqlmock.AnyArg(), "Registered",
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), user))
		assert.Empty(t, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("secret123")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
		user, err := domain.NewUser("moviefan", "Movie Fan", "secret123", domain.RoleAdmin)
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err = s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrUserNameExists)
	})

	t.Run("invalid user", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		err := s.Create(context.Background(), &domain.User{ID: uuid.New(), UserName: "ab"})
		assert.ErrorIs(t, err, domain.ErrUserNameLength)
	})
}

func TestPostgresUserStore_GetByUserName(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery("WHERE LOWER\\(user_name\\) = LOWER\\(\\$1\\)").
		WithArgs("MovieFan").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(id.String(), "moviefan", "Movie Fan", "$2a$hash", "Admin", now, now))
	mock.ExpectQuery("WHERE LOWER\\(user_name\\) = LOWER\\(\\$1\\)").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	u, err := s.GetByUserName(context.Background(), "MovieFan")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.True(t, u.IsAdmin())

	_, err = s.GetByUserName(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestPostgresUserStore_GetByIDAndList(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(userRowColumns))
	mock.ExpectQuery("FROM users ORDER BY LOWER\\(user_name\\)").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(id.String(), "alice", "Alice", "$2a$hash", "Registered", now, now))

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	users, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].UserName)
}

func TestPostgresUserStore_IsUserNameUnique(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	mock.ExpectQuery("SELECT EXISTS").WithArgs("taken").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	unique, err := s.IsUserNameUnique(context.Background(), "taken")
	require.NoError(t, err)
	assert.False(t, unique)
}
