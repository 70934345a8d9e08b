package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCategoryNameLength is the longest category name accepted.
const MaxCategoryNameLength = 100

// Category groups movies under a unique name.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCategory builds a validated category stamped with the current time.
func NewCategory(name string) (*Category, error) {
	c := &Category{
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the category name.
func (c *Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return NewValidationError("name", "is required", ErrEmptyName)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return NewValidationError("name", "must be at most 100 characters", ErrNameTooLong)
	}
	return nil
}
