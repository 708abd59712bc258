package domain

import "time"

// TaskStatus represents the current state of a project task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskBlocked    TaskStatus = "BLOCKED"
	TaskCancelled  TaskStatus = "CANCELLED"
)

// ValidTaskStatuses contains all valid task status values.
var ValidTaskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted, TaskBlocked, TaskCancelled}

// IsValid checks if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	for _, v := range ValidTaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Task is a unit of work inside a project.
// FamilyID is not stored on the task; it is resolved from the owning project.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	FamilyID    string     `json:"family_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	SortOrder   int        `json:"sort_order"`

	AssigneeID     *string    `json:"assignee_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskSummary is the nested view of a task returned alongside a dependency edge.
type TaskSummary struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Status TaskStatus `json:"status"`
}

// Summary returns the nested view of the task.
func (t *Task) Summary() TaskSummary {
	return TaskSummary{ID: t.ID, Name: t.Name, Status: t.Status}
}

// SetDescription sets the task description.
func (t *Task) SetDescription(desc string) {
	t.Description = &desc
}

// TaskDetail is a task together with both directions of its dependency edges.
type TaskDetail struct {
	*Task
	BlockedBy []BlockedBy `json:"blocked_by"`
	Blocks    []Blocks    `json:"blocks"`
}
