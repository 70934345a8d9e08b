package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
	"github.com/moviecatalog/movie-api/internal/service/auth"
	"github.com/moviecatalog/movie-api/internal/store"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	UserName string
	Name     string
	Password string
	// Role is optional and defaults to Registered.
	Role string
	// GrantedBy is the role of the authenticated caller, empty for an
	// anonymous registration. Only an Admin caller may grant Admin.
	GrantedBy domain.Role
}

// LoginResult is returned for a successful login.
type LoginResult struct {
	User      *domain.User
	Role      domain.Role
	Token     string
	ExpiresAt time.Time
}

// UserService provides account operations.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)

	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Register creates an account. A taken username yields
	// store.ErrUserNameExists.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Login returns ErrInvalidCredentials for an unknown username or a wrong
	// password.
	Login(ctx context.Context, userName, password string) (*LoginResult, error)
}

type userService struct {
	db        store.TxBeginner
	users     store.UserStore
	tokens    auth.JWTService
	passwords auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	db store.TxBeginner,
	userStore store.UserStore,
	tokens auth.JWTService,
	passwords auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if db == nil || userStore == nil || tokens == nil || passwords == nil {
		return nil, &ServiceError{
			Service:   "user",
			Operation: "create_service",
			Message:   "db, userStore, tokens and passwords are required",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userService{
		db:        db,
		users:     userStore,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// List implements UserService.
func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users", "error", err)
		return nil, NewServiceError("user", "list", "failed to list users", err)
	}
	return users, nil
}

// Get implements UserService.
func (s *userService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
				"error", err,
				"user_id", id.String())
		}
		return nil, NewServiceError("user", "get", "failed to get user", err)
	}
	return user, nil
}

// Register implements UserService.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAdmin && input.GrantedBy != domain.RoleAdmin {
		log.Warn("admin role requested without admin credentials",
			"user_name", input.UserName,
			"granted_by", string(input.GrantedBy))
		return nil, domain.NewValidationError("role",
			"only an administrator can grant the Admin role", domain.ErrInvalidRole)
	}

	user, err := domain.NewUser(input.UserName, input.Name, input.Password, role)
	if err != nil {
		return nil, domain.NewValidationError("", err.Error(), domain.ErrValidation)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)

		unique, err := txUsers.IsUserNameUnique(ctx, user.UserName)
		if err != nil {
			return err
		}
		if !unique {
			return store.ErrUserNameExists
		}
		return txUsers.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Debug("username already taken", "user_name", user.UserName)
		} else {
			log.Error("failed to register user", "error", err, "user_name", user.UserName)
		}
		return nil, NewServiceError("user", "register", "failed to register user", err)
	}

	log.Info("user registered", "user_id", user.ID.String(), "role", string(user.Role))
	return user, nil
}

// Login implements UserService.
func (s *userService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("login for unknown username")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user for login", "error", err)
		return nil, NewServiceError("user", "login", "failed to load user", err)
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login with wrong password", "user_id", user.ID.String())
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to compare password", "error", err, "user_id", user.ID.String())
		return nil, NewServiceError("user", "login", "failed to verify password", err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		log.Error("failed to generate token", "error", err, "user_id", user.ID.String())
		return nil, NewServiceError("user", "login", "failed to generate token", err)
	}

	log.Info("user logged in", "user_id", user.ID.String())
	return &LoginResult{
		User:      user,
		Role:      user.Role,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
