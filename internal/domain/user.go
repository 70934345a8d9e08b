package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID        = errors.New("user ID cannot be empty")
	ErrEmptyUserName      = errors.New("username cannot be empty")
	ErrUserNameLength     = errors.New("username must be between 3 and 256 characters long")
	ErrEmptyDisplayName   = errors.New("name cannot be empty")
	ErrDisplayNameTooLong = errors.New("name must be at most 256 characters long")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong    = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword      = errors.New("password cannot be empty")
)

const (
	MinUserNameLength = 3
	MaxUserNameLength = 256
	MaxNameLength     = 256
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

// Role is the single authorization role carried by a user and its tokens.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleRegistered Role = "Registered"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRegistered
}

// ParseRole resolves a role name case-insensitively. An empty name yields
// RoleRegistered.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return RoleRegistered, nil
	case strings.EqualFold(s, string(RoleAdmin)):
		return RoleAdmin, nil
	case strings.EqualFold(s, string(RoleRegistered)):
		return RoleRegistered, nil
	default:
		return "", NewValidationError("role", "must be Admin or Registered", ErrInvalidRole)
	}
}

// User is an account that can log in to the catalog.
type User struct {
	ID             uuid.UUID `json:"id"`
	UserName       string    `json:"userName"`
	Name           string    `json:"name"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a new User with a fresh ID and timestamps.
// The caller is responsible for hashing the password before storing the user.
func NewUser(userName, name, password string, role Role) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		UserName:  strings.TrimSpace(userName),
		Name:      strings.TrimSpace(name),
		Password:  password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.UserName == "" {
		return ErrEmptyUserName
	}
	if n := utf8.RuneCountInString(u.UserName); n < MinUserNameLength || n > MaxUserNameLength {
		return ErrUserNameLength
	}

	if u.Name == "" {
		return ErrEmptyDisplayName
	}
	if utf8.RuneCountInString(u.Name) > MaxNameLength {
		return ErrDisplayNameTooLong
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
