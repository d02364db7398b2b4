package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lunavic/tidylist-be/internal/auth"
	"github.com/lunavic/tidylist-be/internal/models"
	"github.com/lunavic/tidylist-be/internal/services"
	"github.com/rs/zerolog/log"
)

// writeJSON writes v as a JSON response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service failure to its response envelope. Typed
// request errors carry their own status and type code; anything else is
// an internal fault surfaced as a 500 with the given type and the raw
// error message.
func writeError(w http.ResponseWriter, err error, internalType string) {
	var reqErr *services.Error
	if errors.As(err, &reqErr) {
		writeJSON(w, reqErr.Status, reqErr.Envelope())
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"status":  false,
		"type":    internalType,
		"message": err.Error(),
	})
}

// requireUser extracts the authenticated user placed on the context by
// the auth middleware. A missing user means the route was wired without
// the middleware.
func requireUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		log.Error().Str("path", r.URL.Path).Msg("Could not retrieve user from context")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":  false,
			"message": "Could not retrieve user from token.",
		})
	}
	return user, ok
}

func invalidBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"status":  false,
		"message": "Invalid request body.",
	})
}
