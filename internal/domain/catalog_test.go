package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  Drama ")
	require.NoError(t, err)
	assert.Equal(t, "Drama", c.Name)
	assert.False(t, c.CreatedAt.IsZero())

	_, err = NewCategory("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewCategory(strings.Repeat("x", MaxCategoryNameLength+1))
	assert.ErrorIs(t, err, ErrNameTooLong)

	_, err = NewCategory(strings.Repeat("é", MaxCategoryNameLength))
	assert.NoError(t, err, "length is counted in characters, not bytes")
}

func TestMovieValidate(t *testing.T) {
	valid := Movie{
		Name:           "Alien",
		Description:    "In space no one can hear you scream.",
		Duration:       117,
		Classification: ClassificationSixteen,
		CategoryID:     3,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(m *Movie)
		want   error
		field  string
	}{
		{"empty name", func(m *Movie) { m.Name = " " }, ErrEmptyName, "name"},
		{"long name", func(m *Movie) { m.Name = strings.Repeat("a", 101) }, ErrNameTooLong, "name"},
		{"long description", func(m *Movie) { m.Description = strings.Repeat("d", 1001) }, ErrDescriptionTooLong, "description"},
		{"zero duration", func(m *Movie) { m.Duration = 0 }, ErrInvalidDuration, "duration"},
		{"bad classification", func(m *Movie) { m.Classification = 9 }, ErrInvalidClassification, "classification"},
		{"missing category", func(m *Movie) { m.CategoryID = 0 }, ErrInvalidCategory, "categoryId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := m.Validate()
			assert.ErrorIs(t, err, tt.want)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestClassificationJSON(t *testing.T) {
	b, err := json.Marshal(ClassificationThirteen)
	require.NoError(t, err)
	assert.JSONEq(t, `"Thirteen"`, string(b))

	tests := []struct {
		input   string
		want    Classification
		wantErr bool
	}{
		{`"Seven"`, ClassificationSeven, false},
		{`"eighteen"`, ClassificationEighteen, false},
		{`2`, ClassificationSixteen, false},
		{`"3"`, ClassificationEighteen, false},
		{`7`, 0, true},
		{`"Twelve"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var c Classification
			err := json.Unmarshal([]byte(tt.input), &c)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClassification)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}

	_, err = json.Marshal(Classification(42))
	assert.Error(t, err)
}

func TestPage(t *testing.T) {
	p, err := NewPage(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Page{Number: DefaultPageNumber, Size: DefaultPageSize}, p)
	assert.Equal(t, 0, p.Offset())

	p, err = NewPage(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 3, p.TotalPages(21))
	assert.Equal(t, 2, p.TotalPages(20))
	assert.Equal(t, 0, p.TotalPages(0))

	_, err = NewPage(-1, 2)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewPage(1, MaxPageSize+1)
	assert.ErrorIs(t, err, ErrValidation)
}
