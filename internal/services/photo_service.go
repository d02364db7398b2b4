package services

import (
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// PhotoServiceProvider defines the interface for profile photo
// management.
type PhotoServiceProvider interface {
	Allowed(mimeType string) bool
	Store(userID string, file io.Reader, originalName string) (string, error)
	Remove(userID string) error
}

// PhotoService keeps at most one stored photo file per user under the
// public image directory.
type PhotoService struct {
	db           *sql.DB
	imageDir     string
	allowedTypes []string
}

// NewPhotoService creates a new PhotoService rooted at publicDir/images.
func NewPhotoService(db *sql.DB, publicDir string, allowedTypes []string) *PhotoService {
	return &PhotoService{db: db, imageDir: filepath.Join(publicDir, "images"), allowedTypes: allowedTypes}
}

// Allowed reports whether the declared MIME type is in the allow-list.
func (s *PhotoService) Allowed(mimeType string) bool {
	for _, t := range s.allowedTypes {
		if strings.EqualFold(strings.TrimSpace(t), mimeType) {
			return true
		}
	}
	return false
}

// Store writes the uploaded file under a collision-resistant name,
// commits it to the user record, then removes the previously stored
// file. A crash between the record update and the old file's removal
// leaks a file rather than a dangling reference.
func (s *PhotoService) Store(userID string, file io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1e9), strings.ToLower(filepath.Ext(originalName)))

	if err := os.MkdirAll(s.imageDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(s.imageDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	var previous sql.NullString
	if err := s.db.QueryRow("SELECT photo FROM users WHERE id = ?", userID).Scan(&previous); err != nil {
		os.Remove(path)
		return "", err
	}
	if _, err := s.db.Exec("UPDATE users SET photo = ? WHERE id = ?", name, userID); err != nil {
		os.Remove(path)
		return "", err
	}

	if previous.Valid && previous.String != "" {
		s.removeFile(previous.String)
	}
	return name, nil
}

// Remove clears the user's photo field and deletes the stored file if
// one exists. Removing when no photo is set is a no-op.
func (s *PhotoService) Remove(userID string) error {
	var previous sql.NullString
	if err := s.db.QueryRow("SELECT photo FROM users WHERE id = ?", userID).Scan(&previous); err != nil {
		return err
	}
	if _, err := s.db.Exec("UPDATE users SET photo = NULL WHERE id = ?", userID); err != nil {
		return err
	}
	if previous.Valid && previous.String != "" {
		s.removeFile(previous.String)
	}
	return nil
}

func (s *PhotoService) removeFile(name string) {
	if err := os.Remove(filepath.Join(s.imageDir, name)); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", name).Msg("Failed to remove stored profile photo")
	}
}
