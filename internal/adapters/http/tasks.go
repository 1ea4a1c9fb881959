package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

func (rt *Router) tasksCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.createTask(w, r)
	case http.MethodGet:
		rt.listTasks(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string     `json:"client_id"`
		Title    string     `json:"title"`
		Details  string     `json:"details"`
		DueAt    *time.Time `json:"due_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.ClientID) == "" || strings.TrimSpace(req.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client_id and title are required"})
		return
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:        uuid.NewString(),
		ClientID:  req.ClientID,
		Title:     req.Title,
		Details:   req.Details,
		Status:    domain.TaskPending,
		DueAt:     req.DueAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := rt.tasks.CreateTask(r.Context(), task); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (rt *Router) listTasks(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client_id is required"})
		return
	}
	includeDeleted := r.URL.Query().Get("include_deleted") == "true"

	tasks, err := rt.tasks.ListTasks(r.Context(), clientID, includeDeleted)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (rt *Router) taskByID(w http.ResponseWriter, r *http.Request) {
	taskID := strings.TrimPrefix(r.URL.Path, "/v1/tasks/")
	if taskID == "" || strings.Contains(taskID, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "task id is required"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		rt.getTask(w, r, taskID)
	case http.MethodPut:
		rt.updateTask(w, r, taskID)
	case http.MethodDelete:
		rt.deleteTask(w, r, taskID)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) getTask(w http.ResponseWriter, r *http.Request, taskID string) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client_id is required"})
		return
	}

	task, err := rt.tasks.GetTaskByID(r.Context(), clientID, taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (rt *Router) updateTask(w http.ResponseWriter, r *http.Request, taskID string) {
	var req struct {
		ClientID string     `json:"client_id"`
		Title    string     `json:"title"`
		Details  string     `json:"details"`
		Status   string     `json:"status"`
		DueAt    *time.Time `json:"due_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.ClientID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client_id is required"})
		return
	}

	task, err := rt.tasks.GetTaskByID(r.Context(), req.ClientID, taskID)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Details != "" {
		task.Details = req.Details
	}
	if req.DueAt != nil {
		task.DueAt = req.DueAt
	}
	if req.Status != "" {
		status := domain.TaskStatus(req.Status)
		switch status {
		case domain.TaskPending, domain.TaskInProgress, domain.TaskCompleted:
			task.Status = status
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
	}
	task.UpdatedAt = time.Now().UTC()

	if err := rt.tasks.UpdateTask(r.Context(), task); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (rt *Router) deleteTask(w http.ResponseWriter, r *http.Request, taskID string) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client_id is required"})
		return
	}

	if err := rt.tasks.SoftDeleteTask(r.Context(), clientID, taskID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
