package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

// ValidProjectStatuses contains all valid project status values.
var ValidProjectStatuses = []ProjectStatus{ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled}

// IsValid checks if the status is a valid project status.
func (s ProjectStatus) IsValid() bool {
	for _, v := range ValidProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Project groups tasks for one family. A project exclusively owns its tasks.
type Project struct {
	ID          string        `json:"id"`
	FamilyID    string        `json:"family_id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Budget      *float64      `json:"budget,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	CreatedByID string        `json:"created_by_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Tasks       []*Task       `json:"tasks,omitempty"`
}

// DatesInOrder reports whether the due date, when both dates are set, is
// not before the start date.
func DatesInOrder(start, due *time.Time) bool {
	return start == nil || due == nil || !due.Before(*start)
}

// GraphReport is the result of checking a project's edge set for cycles.
type GraphReport struct {
	ProjectID string `json:"project_id"`
	TaskCount int    `json:"task_count"`
	EdgeCount int    `json:"edge_count"`
	Acyclic   bool   `json:"acyclic"`
}
