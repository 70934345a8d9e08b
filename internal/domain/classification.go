package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Classification is the minimum audience age for a movie.
type Classification int

const (
	ClassificationSeven Classification = iota
	ClassificationThirteen
	ClassificationSixteen
	ClassificationEighteen
)

var classificationNames = [...]string{"Seven", "Thirteen", "Sixteen", "Eighteen"}

// Classifications lists every valid classification in ascending age order.
func Classifications() []Classification {
	return []Classification{
		ClassificationSeven,
		ClassificationThirteen,
		ClassificationSixteen,
		ClassificationEighteen,
	}
}

// Valid reports whether c is a known classification.
func (c Classification) Valid() bool {
	return c >= ClassificationSeven && c <= ClassificationEighteen
}

func (c Classification) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Classification(%d)", int(c))
	}
	return classificationNames[c]
}

// ParseClassification accepts either the name ("Thirteen", any case) or the
// numeric value ("1").
func ParseClassification(s string) (Classification, error) {
	s = strings.TrimSpace(s)
	for i, name := range classificationNames {
		if strings.EqualFold(s, name) {
			return Classification(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Classification(n).Valid() {
		return Classification(n), nil
	}
	return 0, NewValidationError("classification", "must be one of Seven, Thirteen, Sixteen, Eighteen",
		ErrInvalidClassification)
}

func (c Classification) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrInvalidClassification
	}
	return json.Marshal(c.String())
}

func (c *Classification) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseClassification(name)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return NewValidationError("classification", "must be a name or a number", ErrInvalidClassification)
	}
	if !Classification(n).Valid() {
		return NewValidationError("classification", "must be between 0 and 3", ErrInvalidClassification)
	}
	*c = Classification(n)
	return nil
}
