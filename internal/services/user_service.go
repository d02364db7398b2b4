package services

import (
	"database/sql"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lunavic/tidylist-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	Register(name, email, password, passwordConfirm string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	UpdateProfile(id, name, email string) error
	ChangePassword(id, currentPassword, newPassword, confirmPassword string) error
}

// UserService provides business logic for accounts and credentials.
type UserService struct {
	db         *sql.DB
	emailRE    *regexp.Regexp
	minPassLen int
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, emailPattern *regexp.Regexp, passwordMinLength, bcryptCost int) *UserService {
	return &UserService{db: db, emailRE: emailPattern, minPassLen: passwordMinLength, bcryptCost: bcryptCost}
}

// GetUserByID retrieves a single user by their ID, including the
// embedded todo lists.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, name, email, password_hash, photo, lists_json, created_at FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user with ID %s not found: %w", id, err)
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) getUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, name, email, password_hash, photo, lists_json, created_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

// Register validates a registration request and creates the user with a
// bcrypt hash of the password and an empty list collection.
func (s *UserService) Register(name, email, password, passwordConfirm string) (models.User, error) {
	if name == "" || email == "" || password == "" || passwordConfirm == "" {
		return models.User{}, badRequest("EMPTY_FIELDS", "Please fill in all fields correctly.")
	}
	if !s.emailRE.MatchString(email) {
		return models.User{}, badRequest("INCORRECT_EMAIL", "Please enter a valid email.")
	}

	var exists int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE email = ?", email).Scan(&exists)
	if err == nil {
		return models.User{}, &Error{
			Status:  http.StatusForbidden,
			Type:    "REGISTERED_EMAIL",
			Message: "There is a registered user with this email address.",
		}
	}
	if err != sql.ErrNoRows {
		return models.User{}, err
	}

	if password != passwordConfirm {
		return models.User{}, badRequest("PASSWORDS_NOT_MATCH", "Passwords do not match.")
	}
	if len(password) < s.minPassLen {
		return models.User{}, s.passwordTooShort()
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Lists:        []models.TodoList{},
		CreatedAt:    time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, name, email, password_hash, lists_json, created_at) VALUES(?, ?, ?, ?, '[]', ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt.UnixMilli()); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a user's credentials.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, badRequest("EMPTY_FIELDS", "Please fill out all fields.")
	}

	user, err := s.getUserByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, badRequest("USER_NOT_FOUND", "User not found.")
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, badRequest("INCORRECT_PASSWORD", "Incorrect password.")
	}
	return user, nil
}

// UpdateProfile updates a user's name and email.
func (s *UserService) UpdateProfile(id, name, email string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return badRequest("EMPTY_FIELDS", "Please fill out all fields.")
	}
	_, err := s.db.Exec("UPDATE users SET name = ?, email = ? WHERE id = ?", name, email, id)
	return err
}

// ChangePassword verifies the current password, then hashes and sets a
// new password for the user.
func (s *UserService) ChangePassword(id, currentPassword, newPassword, confirmPassword string) error {
	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return badRequest("EMPTY_FIELDS", "Please fill out all fields.")
	}
	if newPassword != confirmPassword {
		return badRequest("PASSWORDS_NOT_MATCH", "Passwords not match.")
	}
	if len(newPassword) < s.minPassLen {
		return s.passwordTooShort()
	}

	var currentHash string
	if err := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id).Scan(&currentHash); err != nil {
		return fmt.Errorf("could not find user to update password: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(currentPassword)); err != nil {
		return badRequest("INCORRECT_PASSWORD", "Incorrect password.")
	}
	if newPassword == currentPassword {
		return badRequest("SAME_PASSWORD", "The new password cannot be the same as the old password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashedPassword), id)
	return err
}

func (s *UserService) passwordTooShort() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Type:    "PASSWORD_TOO_SHORT",
		Message: "The password is too short.",
		Extra:   map[string]any{"min": strconv.Itoa(s.minPassLen)},
	}
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user      models.User
		photo     sql.NullString
		listsJSON string
		createdAt int64
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &photo, &listsJSON, &createdAt)
	if err != nil {
		return models.User{}, err
	}
	user.Photo = photo.String
	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	if err := unmarshalLists(listsJSON, &user.Lists); err != nil {
		return models.User{}, err
	}
	return user, nil
}
