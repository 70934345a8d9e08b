package domain

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 2
	MaxPageSize       = 100
)

// Page selects a slice of an ordered listing.
type Page struct {
	Number int
	Size   int
}

// NewPage validates the requested page. Zero values fall back to the defaults.
func NewPage(number, size int) (Page, error) {
	if number == 0 {
		number = DefaultPageNumber
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if number < 1 {
		return Page{}, NewValidationError("pageNumber", "must be at least 1", ErrValidation)
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, NewValidationError("pageSize", "must be between 1 and 100", ErrValidation)
	}
	return Page{Number: number, Size: size}, nil
}

// Offset is the number of rows skipped before the page starts.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages returns how many pages of this size cover total rows.
func (p Page) TotalPages(total int) int {
	if p.Size <= 0 || total <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}
