package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/lunavic/tidylist-be/internal/models"
	"github.com/lunavic/tidylist-be/internal/services"
	"github.com/rs/zerolog/log"
)

// PhotoHandler handles profile photo upload and removal.
type PhotoHandler struct {
	photos  services.PhotoServiceProvider
	maxSize int64
}

// NewPhotoHandler creates a new PhotoHandler enforcing the given file
// size cap.
func NewPhotoHandler(photos services.PhotoServiceProvider, maxSize int64) *PhotoHandler {
	return &PhotoHandler{photos: photos, maxSize: maxSize}
}

// Handle dispatches between upload (multipart body) and removal (JSON
// body with remove set).
func (h *PhotoHandler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.upload(w, r, user)
		return
	}

	var payload struct {
		Remove bool `json:"remove"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)
	if !payload.Remove {
		h.missingFile(w)
		return
	}

	if err := h.photos.Remove(user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to remove profile photo")
		writeError(w, err, "ERROR_REMOVING_PROFILE_PHOTO")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    "PROFILE_PHOTO_REMOVED",
		"message": "Profile photo removed successfully.",
	})
}

func (h *PhotoHandler) upload(w http.ResponseWriter, r *http.Request, user *models.User) {
	// Headroom on top of the file cap for multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+64<<10)

	mr, err := r.MultipartReader()
	if err != nil {
		h.missingFile(w)
		return
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to read upload stream")
			writeError(w, err, "ERROR_UPLOADING_IMAGE")
			return
		}
		if part.FileName() == "" {
			continue
		}

		if mimeType := part.Header.Get("Content-Type"); !h.photos.Allowed(mimeType) {
			part.Close()
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"status":  false,
				"type":    "UNSUPPORTED_FILE_TYPE",
				"message": "This file type is not supported.",
			})
			return
		}

		name, err := h.photos.Store(user.ID, part, part.FileName())
		part.Close()
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to store profile photo")
			writeError(w, err, "ERROR_UPLOADING_IMAGE")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status":  true,
			"type":    "PROFILE_PHOTO_UPLOADED",
			"message": "Profile photo uploaded successfully.",
			"image":   name,
		})
		return
	}

	h.missingFile(w)
}

func (h *PhotoHandler) missingFile(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"status":  false,
		"type":    "MISSING_PARAMETERS",
		"message": "Image file is required.",
	})
}
