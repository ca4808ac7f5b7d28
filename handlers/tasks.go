package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tasklist-service/models"
	"tasklist-service/session"
	"tasklist-service/store"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// errTaskNotFound covers both a missing task and a task owned by someone
// else; callers cannot distinguish the two.
var errTaskNotFound = errors.New("task not found")

// TaskHandler handles per-user task CRUD. The owner used for filtering is
// always the session's username, never a client-supplied value.
type TaskHandler struct {
	store    *store.Store
	sessions *session.Store
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(st *store.Store, sessions *session.Store) *TaskHandler {
	return &TaskHandler{
		store:    st,
		sessions: sessions,
	}
}

// List handles GET /tasks - tasks owned by the logged-in user, in store order
func (h *TaskHandler) List(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessions.Authenticate(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewValidationError("Unauthorized"))
		return
	}

	doc, err := h.store.Load()
	if err != nil {
		logRequest(ctx, "error", "Failed to load store", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Server error"))
		return
	}

	tasks := make([]models.Task, 0)
	for _, t := range doc.Tasks {
		if t.User == username {
			tasks = append(tasks, t)
		}
	}

	logRequest(ctx, "info", "Tasks listed", zap.String("username", username), zap.Int("count", len(tasks)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// Add handles POST /add - create a task for the logged-in user
func (h *TaskHandler) Add(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessions.Authenticate(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewValidationError("Unauthorized"))
		return
	}

	var req models.AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, "error", "Invalid request body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid JSON"))
		return
	}

	if req.Task == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Task description is required"))
		return
	}

	taskID := h.store.NextTaskID()
	err := h.store.Update(func(doc *models.Document) error {
		doc.Tasks = append(doc.Tasks, models.Task{
			ID:   taskID,
			Task: req.Task,
			User: username,
		})
		return nil
	})
	if err != nil {
		logRequest(ctx, "error", "Failed to save task", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Server error"))
		return
	}

	logRequest(ctx, "info", "Task added", zap.String("username", username), zap.Int64("task_id", taskID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Task added",
		"taskId":  taskID,
	})
}

// Edit handles PUT /tasks/{id} - replace the text of an owned task
func (h *TaskHandler) Edit(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessions.Authenticate(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewValidationError("Unauthorized"))
		return
	}

	idStr := mux.Vars(r)["id"]
	taskID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logRequest(ctx, "error", "Invalid task ID", zap.String("id", idStr))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid task ID"))
		return
	}

	var req models.EditTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, "error", "Invalid request body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid JSON"))
		return
	}

	err = h.store.Update(func(doc *models.Document) error {
		for i := range doc.Tasks {
			if doc.Tasks[i].ID == taskID && doc.Tasks[i].User == username {
				doc.Tasks[i].Task = req.Task
				return nil
			}
		}
		return errTaskNotFound
	})
	if errors.Is(err, errTaskNotFound) {
		logRequest(ctx, "info", "Task not found for update", zap.Int64("task_id", taskID))
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(errs.NewNotFoundError("Task not found"))
		return
	}
	if err != nil {
		logRequest(ctx, "error", "Failed to update task", zap.Error(err), zap.Int64("task_id", taskID))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Server error"))
		return
	}

	logRequest(ctx, "info", "Task updated", zap.String("username", username), zap.Int64("task_id", taskID))

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Task updated"})
}

// Delete handles DELETE /tasks/{id} - remove an owned task
func (h *TaskHandler) Delete(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username, ok := h.sessions.Authenticate(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewValidationError("Unauthorized"))
		return
	}

	idStr := mux.Vars(r)["id"]
	taskID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logRequest(ctx, "error", "Invalid task ID", zap.String("id", idStr))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid task ID"))
		return
	}

	err = h.store.Update(func(doc *models.Document) error {
		for i := range doc.Tasks {
			if doc.Tasks[i].ID == taskID && doc.Tasks[i].User == username {
				doc.Tasks = append(doc.Tasks[:i], doc.Tasks[i+1:]...)
				return nil
			}
		}
		return errTaskNotFound
	})
	if errors.Is(err, errTaskNotFound) {
		logRequest(ctx, "info", "Task not found for deletion", zap.Int64("task_id", taskID))
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(errs.NewNotFoundError("Task not found or unauthorized"))
		return
	}
	if err != nil {
		logRequest(ctx, "error", "Failed to delete task", zap.Error(err), zap.Int64("task_id", taskID))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Server error"))
		return
	}

	logRequest(ctx, "info", "Task deleted", zap.String("username", username), zap.Int64("task_id", taskID))

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Task deleted"})
}
