package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/service"
)

// CategoryDTO is the wire form of a category. ID is ignored on create.
type CategoryDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"      validate:"required,max=100"`
	CreatedAt time.Time `json:"createdAt"`
}

// MovieDTO is the wire form of a movie. ID is ignored on create.
type MovieDTO struct {
	ID             int64                 `json:"id"`
	Name           string                `json:"name"           validate:"required,max=100"`
	Description    string                `json:"description"    validate:"max=1000"`
	Duration       int                   `json:"duration"       validate:"required,gt=0"`
	ImagePath      string                `json:"imagePath"      validate:"omitempty,max=2048"`
	ImageLocalPath string                `json:"imageLocalPath"`
	Classification domain.Classification `json:"classification"`
	CategoryID     int64                 `json:"categoryId"     validate:"required,gt=0"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// MoviePageDTO is one page of the movie listing.
type MoviePageDTO struct {
	TotalMovies int        `json:"totalMovies"`
	PageNumber  int        `json:"pageNumber"`
	PageSize    int        `json:"pageSize"`
	TotalPages  int        `json:"totalPages"`
	Movies      []MovieDTO `json:"movies"`
}

// UserDTO is the wire form of a user account. The password hash is never exposed.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"userName"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserDataDTO identifies a user in register and login responses.
type UserDataDTO struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"userName"`
	Name     string    `json:"name"`
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	UserName string `json:"userName" validate:"required,min=3,max=256"`
	Name     string `json:"name"     validate:"required,max=256"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	// Role is optional; an empty role registers a Registered user. Admin is
	// only granted to callers holding an Admin token.
	Role string `json:"role" validate:"omitempty,max=32"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponseDTO is returned for a successful login.
type LoginResponseDTO struct {
	User      UserDataDTO `json:"user"`
	Role      string      `json:"role"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// APIResponse wraps user endpoint responses.
type APIResponse struct {
	StatusCode    int         `json:"statusCode"`
	IsSuccess     bool        `json:"isSuccess"`
	ErrorMessages []string    `json:"errorMessages"`
	Result        interface{} `json:"result"`
}

func newAPIResponse(status int, result interface{}) APIResponse {
	return APIResponse{
		StatusCode:    status,
		IsSuccess:     true,
		ErrorMessages: []string{},
		Result:        result,
	}
}

func newAPIErrorResponse(status int, messages ...string) APIResponse {
	return APIResponse{
		StatusCode:    status,
		IsSuccess:     false,
		ErrorMessages: messages,
	}
}

func categoryToDTO(c domain.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func categoriesToDTO(categories []domain.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryToDTO(c))
	}
	return out
}

func (d CategoryDTO) toDomain() *domain.Category {
	return &domain.Category{ID: d.ID, Name: d.Name}
}

func movieToDTO(m domain.Movie) MovieDTO {
	return MovieDTO{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		Duration:       m.Duration,
		ImagePath:      m.ImagePath,
		ImageLocalPath: m.ImageLocalPath,
		Classification: m.Classification,
		CategoryID:     m.CategoryID,
		CreatedAt:      m.CreatedAt,
	}
}

func moviesToDTO(movies []domain.Movie) []MovieDTO {
	out := make([]MovieDTO, 0, len(movies))
	for _, m := range movies {
		out = append(out, movieToDTO(m))
	}
	return out
}

// toDomain drops ImageLocalPath; only the service assigns local files.
func (d MovieDTO) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		Duration:       d.Duration,
		ImagePath:      d.ImagePath,
		Classification: d.Classification,
		CategoryID:     d.CategoryID,
	}
}

func moviePageToDTO(p *service.MoviePage) MoviePageDTO {
	return MoviePageDTO{
		TotalMovies: p.TotalMovies,
		PageNumber:  p.PageNumber,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages,
		Movies:      moviesToDTO(p.Movies),
	}
}

func userToDTO(u domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		UserName:  u.UserName,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func usersToDTO(users []domain.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userToDTO(u))
	}
	return out
}

func userToDataDTO(u *domain.User) UserDataDTO {
	return UserDataDTO{ID: u.ID, UserName: u.UserName, Name: u.Name}
}
