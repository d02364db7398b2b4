package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lunavic/tidylist-be/internal/models"
	"github.com/lunavic/tidylist-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ListHandler handles mutations over the authenticated user's todo
// lists. Mutations targeting an id that is not in the user's collection
// report success without changing anything; the store tracks the miss
// but the response contract treats both outcomes the same.
type ListHandler struct {
	lists services.ListServiceProvider
}

// NewListHandler creates a new ListHandler.
func NewListHandler(lists services.ListServiceProvider) *ListHandler {
	return &ListHandler{lists: lists}
}

// ListPayload defines the structure for list create/update requests.
type ListPayload struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Todos       []models.TodoItem `json:"todos"`
}

// Create handles creation of a new todo list.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload ListPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	list, err := h.lists.CreateList(user.ID, payload.Title, payload.Description, payload.Todos)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create todo list")
		writeError(w, err, "ERROR_CREATING_TODO_LIST")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    "TODO_LIST_CREATED",
		"message": "Todo list created.",
		"list":    list,
	})
}

// Update handles a full replace of a list's title, description and
// todos.
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload ListPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	if _, err := h.lists.UpdateList(user.ID, payload.ID, payload.Title, payload.Description, payload.Todos); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Str("list_id", payload.ID).Msg("Failed to update todo list")
		writeError(w, err, "ERROR_UPDATING_TODO_LIST")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    "TODO_LIST_UPDATED",
		"message": "Todo list updated.",
	})
}

// Delete handles removal of a todo list.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	if _, err := h.lists.DeleteList(user.ID, payload.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Str("list_id", payload.ID).Msg("Failed to delete todo list")
		writeError(w, err, "ERROR_DELETING_TODO_LIST")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    "TODO_LIST_DELETED",
		"message": "Todo list deleted.",
	})
}

// Star handles starring and unstarring a list. The response reflects
// the requested direction even when no list matched.
func (h *ListHandler) Star(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		ID     string `json:"id"`
		Unstar bool   `json:"unstar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	if _, err := h.lists.SetStar(user.ID, payload.ID, !payload.Unstar); err != nil {
		errType := "ERROR_STARRING_LIST"
		if payload.Unstar {
			errType = "ERROR_UNSTARRING_LIST"
		}
		log.Error().Err(err).Str("user_id", user.ID).Str("list_id", payload.ID).Msg("Failed to star todo list")
		writeError(w, err, errType)
		return
	}

	resType, message := "TODO_LIST_STARRED", "Todo list starred."
	if payload.Unstar {
		resType, message = "TODO_LIST_UNSTARRED", "Todo list unstarred."
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    resType,
		"message": message,
	})
}

// Archive handles archiving and unarchiving a list.
func (h *ListHandler) Archive(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		ID        string `json:"id"`
		Unarchive bool   `json:"unarchive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	if _, err := h.lists.SetArchive(user.ID, payload.ID, !payload.Unarchive); err != nil {
		errType := "ERROR_ARCHIVING_LIST"
		if payload.Unarchive {
			errType = "ERROR_UNARCHIVING_LIST"
		}
		log.Error().Err(err).Str("user_id", user.ID).Str("list_id", payload.ID).Msg("Failed to archive todo list")
		writeError(w, err, errType)
		return
	}

	resType, message := "TODO_LIST_ARCHIVED", "Todo list archived."
	if payload.Unarchive {
		resType, message = "TODO_LIST_UNARCHIVED", "Todo list unarchived."
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    resType,
		"message": message,
	})
}

// Complete handles completing and uncompleting a task inside a list.
func (h *ListHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		ListID     string `json:"listId"`
		TaskID     string `json:"taskId"`
		Uncomplete bool   `json:"uncomplete"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidBody(w)
		return
	}

	if _, err := h.lists.SetCompleted(user.ID, payload.ListID, payload.TaskID, !payload.Uncomplete); err != nil {
		errType := "ERROR_COMPLETING_TASK"
		if payload.Uncomplete {
			errType = "ERROR_UNCOMPLETING_TASK"
		}
		log.Error().Err(err).Str("user_id", user.ID).Str("list_id", payload.ListID).Str("task_id", payload.TaskID).Msg("Failed to complete task")
		writeError(w, err, errType)
		return
	}

	resType, message := "TASK_COMPLETED", "Task completed."
	if payload.Uncomplete {
		resType, message = "TASK_UNCOMPLETED", "Task uncompleted."
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"type":    resType,
		"message": message,
	})
}
