package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/moviecatalog/movie-api/internal/api/shared"
	"github.com/moviecatalog/movie-api/internal/domain"
	"github.com/moviecatalog/movie-api/internal/platform/filestore"
	"github.com/moviecatalog/movie-api/internal/service"
	"github.com/moviecatalog/movie-api/internal/service/auth"
	"github.com/moviecatalog/movie-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrNoMoviesFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, service.ErrIDMismatch),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, filestore.ErrUnsupportedImageType),
		errors.Is(err, filestore.ErrImageTooLarge),
		errors.Is(err, filestore.ErrEmptyImage),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-friendly message that does not expose
// internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verrs validator.ValidationErrors
	var domainErr *domain.ValidationError

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, domain.ErrForbidden):
		return "You do not have permission to perform this action"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"
	case errors.Is(err, store.ErrMovieNotFound):
		return "Movie not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrNoMoviesFound):
		return "No movies found"

	case errors.Is(err, store.ErrCategoryExists):
		return "Category already exists"
	case errors.Is(err, store.ErrMovieExists):
		return "Movie already exists"
	case errors.Is(err, store.ErrUserNameExists):
		return "username already exists"
	case errors.Is(err, store.ErrUnknownCategory):
		return "Category does not exist"

	case errors.Is(err, service.ErrIDMismatch):
		return "Id in path does not match id in body"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "username or password incorrect"

	case errors.Is(err, filestore.ErrUnsupportedImageType):
		return "Image must be a JPEG, PNG, GIF or WebP file"
	case errors.Is(err, filestore.ErrImageTooLarge):
		return "Image is too large"
	case errors.Is(err, filestore.ErrEmptyImage):
		return "Image is empty"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.As(err, &verrs), errors.As(err, &domainErr):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid id"
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator and domain validation errors into
// "Invalid <field>: <reason>". Other errors yield "Validation error".
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param()))
	}

	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) {
		if domainErr.Field == "" {
			return domainErr.Message
		}
		return fmt.Sprintf("Invalid %s: %s", domainErr.Field, domainErr.Message)
	}

	// Decoder errors on a typed field, e.g. a string where a number belongs.
	if msg := err.Error(); strings.Contains(msg, "cannot unmarshal") {
		if _, field, ok := strings.Cut(msg, "Go struct field "); ok {
			field, _, _ = strings.Cut(field, " ")
			if i := strings.LastIndex(field, "."); i >= 0 {
				field = field[i+1:]
			}
			return fmt.Sprintf("Invalid %s: wrong type", field)
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "must be at least " + param + " characters"
	case "max":
		return "must be at most " + param + " characters"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	case "oneof":
		return "must be one of " + param
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. fallback
// replaces the generic message for unexpected errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
