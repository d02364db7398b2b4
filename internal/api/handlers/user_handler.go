package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lunavic/tidylist-be/internal/auth"
	"github.com/lunavic/tidylist-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	users  services.UserServiceProvider
	tokens *auth.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, tokens *auth.Service) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	if _, err := h.users.Register(payload.Name, payload.Email, payload.Password, payload.PasswordConfirm); err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		writeError(w, err, "ERROR_CREATING_USER")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    "USER_CREATED",
		"message": "User created successfully.",
	})
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// Login handles user authentication and session token generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	user, err := h.users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		writeError(w, err, "ERROR_LOGGING_IN")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, payload.Remember)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate session token")
		writeError(w, err, "ERROR_LOGGING_IN")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    "LOGGED_IN",
		"message": "User logged in.",
		"user":    user,
		"token":   token,
	})
}

// Me returns the currently authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// UpdatePayload defines the structure for profile update requests.
type UpdatePayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Update handles updating a user's profile information.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload UpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	if err := h.users.UpdateProfile(user.ID, payload.Name, payload.Email); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to update user")
		writeError(w, err, "ERROR_UPDATING_USER")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    "USER_UPDATED",
		"message": "User updated.",
	})
}

// PasswordPayload defines the structure for password change requests.
type PasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePassword handles changing a user's password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload PasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	if err := h.users.ChangePassword(user.ID, payload.CurrentPassword, payload.Password, payload.ConfirmPassword); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to change password")
		writeError(w, err, "ERROR_UPDATING_USER")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    "USER_UPDATED",
		"message": "User updated.",
	})
}
