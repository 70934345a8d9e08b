package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxMovieNameLength        = 100
	MaxMovieDescriptionLength = 1000
)

// Movie is a catalog entry belonging to exactly one category.
// ImagePath is the public URL of the poster, ImageLocalPath its location
// relative to the image storage root.
type Movie struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Duration       int            `json:"duration"`
	ImagePath      string         `json:"imagePath,omitempty"`
	ImageLocalPath string         `json:"imageLocalPath,omitempty"`
	Classification Classification `json:"classification"`
	CategoryID     int64          `json:"categoryId"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Validate checks the movie fields that the store relies on.
func (m *Movie) Validate() error {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return NewValidationError("name", "is required", ErrEmptyName)
	}
	if utf8.RuneCountInString(name) > MaxMovieNameLength {
		return NewValidationError("name", "must be at most 100 characters", ErrNameTooLong)
	}
	if utf8.RuneCountInString(m.Description) > MaxMovieDescriptionLength {
		return NewValidationError("description", "must be at most 1000 characters", ErrDescriptionTooLong)
	}
	if m.Duration <= 0 {
		return NewValidationError("duration", "must be greater than zero", ErrInvalidDuration)
	}
	if !m.Classification.Valid() {
		return NewValidationError("classification", "is not a known classification", ErrInvalidClassification)
	}
	if m.CategoryID <= 0 {
		return NewValidationError("categoryId", "must be greater than zero", ErrInvalidCategory)
	}
	return nil
}

// HasImage reports whether a stored poster is attached.
func (m *Movie) HasImage() bool {
	return m.ImageLocalPath != ""
}
