package client

import (
	"net/url"
	"strconv"
	"time"
)

// TaskUpdates contains optional fields for updating a task.
type TaskUpdates struct {
	Name           *string    `json:"name,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Status         *string    `json:"status,omitempty"`
	SortOrder      *int       `json:"sort_order,omitempty"`
	AssigneeID     *string    `json:"assignee_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
}

// ProjectUpdates contains optional fields for updating a project.
type ProjectUpdates struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// TemplateCustomizations overrides the defaults of a project template.
type TemplateCustomizations struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// AuditQuery filters an audit log query. Zero values are omitted.
type AuditQuery struct {
	Action   string
	MemberID string
	Start    time.Time
	End      time.Time
	Limit    int
}

func (q AuditQuery) encode() string {
	v := url.Values{}
	if q.Action != "" {
		v.Set("action", q.Action)
	}
	if q.MemberID != "" {
		v.Set("member", q.MemberID)
	}
	if !q.Start.IsZero() {
		v.Set("start", q.Start.Format(time.RFC3339))
	}
	if !q.End.IsZero() {
		v.Set("end", q.End.Format(time.RFC3339))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type createTaskRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type addDependencyRequest struct {
	BlockingTaskID string  `json:"blocking_task_id"`
	DependencyType *string `json:"dependency_type,omitempty"`
}

type createFromTemplateRequest struct {
	TemplateID     string                  `json:"template_id"`
	Customizations *TemplateCustomizations `json:"customizations,omitempty"`
}
