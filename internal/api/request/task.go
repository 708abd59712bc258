package request

import "time"

// CreateTaskRequest represents a request to create a task.
type CreateTaskRequest struct {
	Name           string     `json:"name" validate:"required,notblank,max=200"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED BLOCKED CANCELLED"`
	SortOrder      *int       `json:"sort_order,omitempty" validate:"omitempty,gte=0"`
	AssigneeID     *string    `json:"assignee_id,omitempty" validate:"omitempty,notblank,max=100"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty" validate:"omitempty,gte=0"`
	ActualHours    *float64   `json:"actual_hours,omitempty" validate:"omitempty,gte=0"`
}

// UpdateTaskRequest represents a request to update a task.
type UpdateTaskRequest struct {
	Name           *string    `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED BLOCKED CANCELLED"`
	SortOrder      *int       `json:"sort_order,omitempty" validate:"omitempty,gte=0"`
	AssigneeID     *string    `json:"assignee_id,omitempty" validate:"omitempty,notblank,max=100"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty" validate:"omitempty,gte=0"`
	ActualHours    *float64   `json:"actual_hours,omitempty" validate:"omitempty,gte=0"`
}
