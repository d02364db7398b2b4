package services

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lunavic/tidylist-be/internal/models"
)

// ListServiceProvider defines the interface for list services.
type ListServiceProvider interface {
	CreateList(userID, title, description string, todos []models.TodoItem) (models.TodoList, error)
	UpdateList(userID, id, title, description string, todos []models.TodoItem) (bool, error)
	DeleteList(userID, id string) (bool, error)
	SetStar(userID, id string, star bool) (bool, error)
	SetArchive(userID, id string, archive bool) (bool, error)
	SetCompleted(userID, listID, taskID string, completed bool) (bool, error)
}

// ListService mutates the todo lists embedded in a user record. Every
// operation is scoped to the owning user's collection; ids from other
// users can never match.
type ListService struct {
	db *sql.DB
}

// NewListService creates a new ListService.
func NewListService(db *sql.DB) *ListService {
	return &ListService{db: db}
}

// mutate applies fn to the user's lists inside a single transaction so
// concurrent mutations against the same user cannot clobber each other.
// The bool returned by fn reports whether a target element was matched.
func (s *ListService) mutate(userID string, fn func(lists []models.TodoList) ([]models.TodoList, bool)) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var raw string
	if err := tx.QueryRow("SELECT lists_json FROM users WHERE id = ?", userID).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return false, fmt.Errorf("user with ID %s not found: %w", userID, err)
		}
		return false, err
	}

	var lists []models.TodoList
	if err := unmarshalLists(raw, &lists); err != nil {
		return false, err
	}

	lists, found := fn(lists)
	if lists == nil {
		lists = []models.TodoList{}
	}

	out, err := json.Marshal(lists)
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec("UPDATE users SET lists_json = ? WHERE id = ?", string(out), userID); err != nil {
		return false, err
	}
	return found, tx.Commit()
}

// CreateList appends a new list to the user's collection.
func (s *ListService) CreateList(userID, title, description string, todos []models.TodoItem) (models.TodoList, error) {
	if title == "" {
		return models.TodoList{}, badRequest("MISSING_PARAMETERS", "Title is required.")
	}

	list := models.TodoList{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Todos:       normalizeTodos(todos),
	}

	_, err := s.mutate(userID, func(lists []models.TodoList) ([]models.TodoList, bool) {
		return append(lists, list), true
	})
	if err != nil {
		return models.TodoList{}, err
	}
	return list, nil
}

// UpdateList replaces the title, description and todos of the list with
// the given id. An unmatched id leaves the collection untouched.
func (s *ListService) UpdateList(userID, id, title, description string, todos []models.TodoItem) (bool, error) {
	if id == "" || title == "" {
		return false, badRequest("MISSING_PARAMETERS", "ID and title are required.")
	}

	replacement := normalizeTodos(todos)
	return s.mutate(userID, func(lists []models.TodoList) ([]models.TodoList, bool) {
		for i := range lists {
			if lists[i].ID == id {
				lists[i].Title = title
				lists[i].Description = description
				lists[i].Todos = replacement
				return lists, true
			}
		}
		return lists, false
	})
}

// DeleteList removes the list with the given id, leaving siblings in
// place.
func (s *ListService) DeleteList(userID, id string) (bool, error) {
	if id == "" {
		return false, badRequest("MISSING_PARAMETERS", "ID is required.")
	}

	return s.mutate(userID, func(lists []models.TodoList) ([]models.TodoList, bool) {
		kept := make([]models.TodoList, 0, len(lists))
		found := false
		for _, l := range lists {
			if l.ID == id {
				found = true
				continue
			}
			kept = append(kept, l)
		}
		return kept, found
	})
}

// SetStar sets the star flag on the list with the given id.
func (s *ListService) SetStar(userID, id string, star bool) (bool, error) {
	if id == "" {
		return false, badRequest("MISSING_PARAMETERS", "ID is required.")
	}

	return s.mutate(userID, func(lists []models.TodoList) ([]models.TodoList, bool) {
		for i := range lists {
			if lists[i].ID == id {
				lists[i].Star = star
				return lists, true
			}
		}
		return lists, false
	})
}

// SetArchive sets the archive flag on the list with the given id.
func (s *ListService) SetArchive(userID, id string, archive bool) (bool, error) {
	if id == "" {
		return false, badRequest("MISSING_PARAMETERS", "ID is required.")
	}

	return s.mutate(userID, func(lists []models.TodoList) ([]models.TodoList, bool) {
		for i := range lists {
			if lists[i].ID == id {
				lists[i].Archive = archive
				return lists, true
			}
		}
		return lists, false
	})
}

// SetCompleted sets the completed flag on a task inside one of the
// user's lists.
func (s *ListService) SetCompleted(userID, listID, taskID string, completed bool) (bool, error) {
	if listID == "" || taskID == "" {
		return false, badRequest("MISSING_PARAMETERS", "List ID and task ID are required.")
	}

	return s.mutate(userID, func(lists []models.TodoList) ([]models.TodoList, bool) {
		for i := range lists {
			if lists[i].ID != listID {
				continue
			}
			for j := range lists[i].Todos {
				if lists[i].Todos[j].ID == taskID {
					lists[i].Todos[j].Completed = completed
					return lists, true
				}
			}
			return lists, false
		}
		return lists, false
	})
}

// normalizeTodos assigns fresh ids to incoming items that do not carry
// one, mirroring subdocument id assignment on create/replace.
func normalizeTodos(todos []models.TodoItem) []models.TodoItem {
	if todos == nil {
		return []models.TodoItem{}
	}
	for i := range todos {
		if todos[i].ID == "" {
			todos[i].ID = uuid.New().String()
		}
	}
	return todos
}

// unmarshalLists decodes a lists_json column, normalizing a missing or
// null collection to empty.
func unmarshalLists(raw string, lists *[]models.TodoList) error {
	if err := json.Unmarshal([]byte(raw), lists); err != nil {
		return fmt.Errorf("decode lists: %w", err)
	}
	if *lists == nil {
		*lists = []models.TodoList{}
	}
	return nil
}
