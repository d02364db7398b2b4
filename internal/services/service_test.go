package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/lunavic/tidylist-be/internal/database"
	"github.com/lunavic/tidylist-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var testEmailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestUserService(t *testing.T, db *sql.DB) *UserService {
	t.Helper()
	return NewUserService(db, testEmailRE, 6, bcrypt.MinCost)
}

func insertTestUser(t *testing.T, db *sql.DB) string {
	t.Helper()
	id := uuid.New().String()
	_, err := db.Exec("INSERT INTO users(id, name, email, password_hash, lists_json, created_at) VALUES(?, ?, ?, ?, '[]', 0)",
		id, "Test User", id+"@example.com", "irrelevant")
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func loadLists(t *testing.T, db *sql.DB, userID string) []models.TodoList {
	t.Helper()
	var raw string
	if err := db.QueryRow("SELECT lists_json FROM users WHERE id = ?", userID).Scan(&raw); err != nil {
		t.Fatalf("load lists: %v", err)
	}
	var lists []models.TodoList
	if err := json.Unmarshal([]byte(raw), &lists); err != nil {
		t.Fatalf("decode lists: %v", err)
	}
	return lists
}

func assertErrType(t *testing.T, err error, want string) {
	t.Helper()
	var reqErr *Error
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want typed request error %s", err, want)
	}
	if reqErr.Type != want {
		t.Fatalf("error type = %q, want %q", reqErr.Type, want)
	}
}
