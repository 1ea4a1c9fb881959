package domain

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Task is a preparer-assigned work item for a client, e.g. "upload your W-2".
type Task struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	Title     string     `json:"title"`
	Details   string     `json:"details,omitempty"`
	Status    TaskStatus `json:"status"`
	DueAt     *time.Time `json:"due_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
