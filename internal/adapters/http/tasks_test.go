package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jfaulkner/taxdesk/internal/config"
	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

func TestTaskLifecycle(t *testing.T) {
	store := newTaskStoreFake()
	handler := newTestHandler(config.Config{}, routerFakes{tasks: store})

	payload, _ := json.Marshal(map[string]string{
		"client_id": "client-1",
		"title":     "Upload your W-2",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("create expected 201, got %d: %s", res.Code, res.Body.String())
	}
	var created domain.Task
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode created task: %v", err)
	}
	if created.Status != domain.TaskPending {
		t.Fatalf("new task status = %q, want pending", created.Status)
	}

	updatePayload, _ := json.Marshal(map[string]string{
		"client_id": "client-1",
		"status":    "completed",
	})
	updateReq := httptest.NewRequest(http.MethodPut, "/v1/tasks/"+created.ID, bytes.NewReader(updatePayload))
	updateReq.Header.Set("Content-Type", "application/json")
	updateRes := httptest.NewRecorder()
	handler.ServeHTTP(updateRes, updateReq)

	if updateRes.Code != http.StatusOK {
		t.Fatalf("update expected 200, got %d: %s", updateRes.Code, updateRes.Body.String())
	}
	var updated domain.Task
	if err := json.NewDecoder(updateRes.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated task: %v", err)
	}
	if updated.Status != domain.TaskCompleted {
		t.Fatalf("updated status = %q, want completed", updated.Status)
	}

	deleteReq := httptest.NewRequest(http.MethodDelete, "/v1/tasks/"+created.ID+"?client_id=client-1", nil)
	deleteRes := httptest.NewRecorder()
	handler.ServeHTTP(deleteRes, deleteReq)
	if deleteRes.Code != http.StatusOK {
		t.Fatalf("delete expected 200, got %d", deleteRes.Code)
	}
}

func TestUpdateTaskRejectsInvalidStatus(t *testing.T) {
	store := newTaskStoreFake()
	task := &domain.Task{ID: "t-1", ClientID: "client-1", Title: "x", Status: domain.TaskPending}
	if err := store.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	handler := newTestHandler(config.Config{}, routerFakes{tasks: store})

	payload, _ := json.Marshal(map[string]string{
		"client_id": "client-1",
		"status":    "archived",
	})
	req := httptest.NewRequest(http.MethodPut, "/v1/tasks/t-1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestGetTaskReturns404ForWrongClient(t *testing.T) {
	store := newTaskStoreFake()
	task := &domain.Task{ID: "t-1", ClientID: "client-1", Title: "x", Status: domain.TaskPending}
	if err := store.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	handler := newTestHandler(config.Config{}, routerFakes{tasks: store})

	req := httptest.NewRequest(http.MethodGet, "/v1/tasks/t-1?client_id=other", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}
