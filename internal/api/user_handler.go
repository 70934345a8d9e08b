package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/moviecatalog/movie-api/internal/api/shared"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
	"github.com/moviecatalog/movie-api/internal/redact"
	"github.com/moviecatalog/movie-api/internal/service"
)

// UserHandler handles account-related HTTP requests
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("user service cannot be nil for UserHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /user
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, usersToDTO(users))
}

// GetUser handles GET /user/{userId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToDTO(*user))
}

// Register handles POST /user/register. Responses are wrapped in APIResponse;
// success is 201 with the new account's UserDataDTO as the result so clients
// learn the generated id. Requesting the Admin role needs an Admin token.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("invalid register request", slog.String("error", err.Error()))
		h.respondAPIError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		h.respondAPIError(w, r, http.StatusBadRequest, SanitizeValidationError(err), nil)
		return
	}

	input := service.RegisterInput{
		UserName: req.UserName,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	}
	if claims, ok := shared.GetClaims(r.Context()); ok {
		input.GrantedBy = claims.Role
	}

	user, err := h.users.Register(r.Context(), input)
	if err != nil {
		status := MapErrorToStatusCode(err)
		message := GetSafeErrorMessage(err)
		if status == http.StatusInternalServerError {
			message = "Error while registering"
		}
		h.respondAPIError(w, r, status, message, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated,
		newAPIResponse(http.StatusCreated, userToDataDTO(user)))
}

// Login handles POST /user/login. Responses are wrapped in APIResponse.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("invalid login request", slog.String("error", err.Error()))
		h.respondAPIError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		h.respondAPIError(w, r, http.StatusBadRequest, SanitizeValidationError(err), nil)
		return
	}

	result, err := h.users.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.respondAPIError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
			return
		}
		h.respondAPIError(w, r, http.StatusInternalServerError, "Error while logging in", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newAPIResponse(http.StatusOK, LoginResponseDTO{
		User:      userToDataDTO(result.User),
		Role:      string(result.Role),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}))
}

// respondAPIError writes an unsuccessful APIResponse. 5xx errors are logged
// at ERROR and failed logins at WARN.
func (h *UserHandler) respondAPIError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	err error,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case errors.Is(err, service.ErrInvalidCredentials):
		level = slog.LevelWarn
	}
	attrs := []any{"status_code", status, "user_message", message}
	if err != nil {
		attrs = append(attrs, "error", redact.Error(err))
	}
	log.Log(r.Context(), level, "user API error response", attrs...)

	shared.RespondWithJSON(w, r, status, newAPIErrorResponse(status, message))
}
